package domain

import (
	"github.com/google/uuid"

	"callsync/pkg/domerr"
)

// Typed IDs prevent cross-entity assignment at compile time. A RecordingID
// can never be passed where a CDRID is expected, even though both are UUIDs
// underneath.
type (
	// UserID identifies the account that owns recordings and call records.
	UserID uuid.UUID

	// RecordingID identifies a captured call recording.
	RecordingID uuid.UUID

	// CDRID identifies an imported call detail record.
	CDRID uuid.UUID

	// LinkID identifies a committed recording-to-record link.
	LinkID uuid.UUID

	// ImportID identifies one CSV import batch.
	ImportID uuid.UUID
)

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id RecordingID) String() string { return uuid.UUID(id).String() }
func (id CDRID) String() string       { return uuid.UUID(id).String() }
func (id LinkID) String() string      { return uuid.UUID(id).String() }
func (id ImportID) String() string    { return uuid.UUID(id).String() }

// MarshalText/UnmarshalText delegate to uuid.UUID, which defined types do
// not inherit; without them encoding/json emits the IDs as byte arrays
// instead of canonical UUID strings.
func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id RecordingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CDRID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id LinkID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ImportID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RecordingID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CDRID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *LinkID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ImportID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id UserID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id RecordingID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id CDRID) IsZero() bool       { return uuid.UUID(id) == uuid.Nil }
func (id LinkID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ImportID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

// NewRecordingID mints a random recording ID.
func NewRecordingID() RecordingID { return RecordingID(uuid.New()) }

// NewCDRID mints a random call record ID.
func NewCDRID() CDRID { return CDRID(uuid.New()) }

// NewLinkID mints a random link ID.
func NewLinkID() LinkID { return LinkID(uuid.New()) }

// NewImportID mints a random import batch ID.
func NewImportID() ImportID { return ImportID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. All typed parsers delegate here so validation cannot
// drift between types.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, domerr.Newf(domerr.CodeInvalidInput, "%s must not be empty", kind)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domerr.Newf(domerr.CodeInvalidInput, "%s is not a valid UUID", kind)
	}
	if id == uuid.Nil {
		return uuid.Nil, domerr.Newf(domerr.CodeInvalidInput, "%s must not be the nil UUID", kind)
	}
	return id, nil
}

// ParseUserID parses and validates a user ID at a trust boundary.
func ParseUserID(raw string) (UserID, error) {
	id, err := parseUUID(raw, "user id")
	if err != nil {
		return UserID(uuid.Nil), err
	}
	return UserID(id), nil
}

// ParseRecordingID parses and validates a recording ID at a trust boundary.
func ParseRecordingID(raw string) (RecordingID, error) {
	id, err := parseUUID(raw, "recording id")
	if err != nil {
		return RecordingID(uuid.Nil), err
	}
	return RecordingID(id), nil
}

// ParseCDRID parses and validates a call record ID at a trust boundary.
func ParseCDRID(raw string) (CDRID, error) {
	id, err := parseUUID(raw, "call record id")
	if err != nil {
		return CDRID(uuid.Nil), err
	}
	return CDRID(id), nil
}

// ParseLinkID parses and validates a link ID at a trust boundary.
func ParseLinkID(raw string) (LinkID, error) {
	id, err := parseUUID(raw, "link id")
	if err != nil {
		return LinkID(uuid.Nil), err
	}
	return LinkID(id), nil
}

// ParseImportID parses and validates an import batch ID at a trust boundary.
func ParseImportID(raw string) (ImportID, error) {
	id, err := parseUUID(raw, "import id")
	if err != nil {
		return ImportID(uuid.Nil), err
	}
	return ImportID(id), nil
}
