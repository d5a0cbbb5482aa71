package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callsync/pkg/domerr"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRecordingID("")
		require.Error(t, err)
		assert.True(t, domerr.HasCode(err, domerr.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseRecordingID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, domerr.HasCode(err, domerr.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRecordingID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, domerr.HasCode(err, domerr.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseRecordingID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, RecordingID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	recordingID := RecordingID(uuid.New())
	cdrID := CDRID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ RecordingID = cdrID    // compile error
	// var _ CDRID = recordingID    // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(recordingID), uuid.UUID(cdrID))
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.
//
// Parsing must reject attack vectors at API entry points before they reach
// stores or log lines.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE recordings;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400​-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		// Note: uuid.Parse trims whitespace, so " uuid " is accepted as valid

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domerr.HasCode(err, domerr.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical
// parsing behavior. Inconsistent validation across ID types could create
// holes at trust boundaries.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	// All types should accept valid UUID
	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errUser := ParseUserID(validUUID)
		_, errRecording := ParseRecordingID(validUUID)
		_, errCDR := ParseCDRID(validUUID)
		_, errLink := ParseLinkID(validUUID)
		_, errImport := ParseImportID(validUUID)

		require.NoError(t, errUser)
		require.NoError(t, errRecording)
		require.NoError(t, errCDR)
		require.NoError(t, errLink)
		require.NoError(t, errImport)
	})

	// All types should reject invalid inputs identically
	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errRecording := ParseRecordingID(input)
			_, errCDR := ParseCDRID(input)
			_, errLink := ParseLinkID(input)
			_, errImport := ParseImportID(input)

			require.Error(t, errUser)
			require.Error(t, errRecording)
			require.Error(t, errCDR)
			require.Error(t, errLink)
			require.Error(t, errImport)
		})
	}
}

// TestIsZero confirms zero-value detection for freshly minted vs nil IDs.
func TestIsZero(t *testing.T) {
	assert.True(t, RecordingID(uuid.Nil).IsZero())
	assert.False(t, NewRecordingID().IsZero())
	assert.True(t, LinkID(uuid.Nil).IsZero())
	assert.False(t, NewLinkID().IsZero())
}
