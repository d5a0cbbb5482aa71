package csvimport

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Parser behavior across the header/format variance real exports show.
type ParserSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserSuite))
}

func (s *ParserSuite) readAll(csv string) ([]Row, []error) {
	parser, err := NewParser(strings.NewReader(csv))
	s.Require().NoError(err)

	var rows []Row
	var rowErrs []error
	for {
		row, err := parser.Next()
		if err == io.EOF {
			return rows, rowErrs
		}
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		rows = append(rows, row)
	}
}

func (s *ParserSuite) TestHeaderResolution() {
	s.Run("canonical headers", func() {
		rows, rowErrs := s.readAll(
			"Call Time,Direction,Source,Destination,Duration,Disposition,Time To Answer\n" +
				"2024-01-01 10:00:00,Inbound,555-1111,555-2222,125,ANSWERED,4\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)

		row := rows[0]
		s.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), row.CallTime)
		s.Equal(id.DirectionInbound, row.Direction)
		s.Require().NotNil(row.SourceNumber)
		s.Equal("555-1111", *row.SourceNumber)
		s.Require().NotNil(row.DestinationNumber)
		s.Equal("555-2222", *row.DestinationNumber)
		s.Require().NotNil(row.DurationSeconds)
		s.Equal(125, *row.DurationSeconds)
		s.Require().NotNil(row.Disposition)
		s.Equal("ANSWERED", *row.Disposition)
		s.Require().NotNil(row.TimeToAnswerSeconds)
		s.Equal(4, *row.TimeToAnswerSeconds)
	})

	s.Run("snake_case headers from machine exports", func() {
		rows, rowErrs := s.readAll(
			"call_time,direction,source_number,destination_number,duration_seconds,disposition\n" +
				"2024-01-01 10:00:00,inbound,555-1111,555-2222,125,ANSWERED\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)

		row := rows[0]
		s.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), row.CallTime)
		s.Equal(id.DirectionInbound, row.Direction)
		s.Require().NotNil(row.SourceNumber)
		s.Equal("555-1111", *row.SourceNumber)
		s.Require().NotNil(row.DestinationNumber)
		s.Equal("555-2222", *row.DestinationNumber)
		s.Require().NotNil(row.DurationSeconds)
		s.Equal(125, *row.DurationSeconds)
	})

	s.Run("aliased headers from a different provider", func() {
		rows, rowErrs := s.readAll(
			"Date/Time,Call Type,From,To,Talk Time\n" +
				"01/02/2024 15:04:05,Outgoing,555-1111,555-2222,2:05\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)

		row := rows[0]
		s.Equal(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), row.CallTime)
		s.Equal(id.DirectionOutbound, row.Direction)
		s.Require().NotNil(row.DurationSeconds)
		s.Equal(125, *row.DurationSeconds)
	})

	s.Run("missing call time column is rejected at the header", func() {
		_, err := NewParser(strings.NewReader("Direction,Source\nInbound,555-1111\n"))
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeInvalidInput))
	})

	s.Run("missing direction column is rejected at the header", func() {
		_, err := NewParser(strings.NewReader("Call Time,Source\n2024-01-01 10:00:00,555-1111\n"))
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeInvalidInput))
	})

	s.Run("empty file is rejected", func() {
		_, err := NewParser(strings.NewReader(""))
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeInvalidInput))
	})
}

func (s *ParserSuite) TestRowParsing() {
	header := "Call Time,Direction,Source,Duration\n"

	s.Run("optional cells become nil, not empty strings", func() {
		rows, rowErrs := s.readAll(header + "2024-01-01 10:00:00,in,,\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)
		s.Nil(rows[0].SourceNumber)
		s.Nil(rows[0].DurationSeconds)
	})

	s.Run("clock durations include hours", func() {
		rows, rowErrs := s.readAll(header + "2024-01-01 10:00:00,in,555-1111,1:02:05\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)
		s.Require().NotNil(rows[0].DurationSeconds)
		s.Equal(3725, *rows[0].DurationSeconds)
	})

	s.Run("bad rows are reported with their line number and skipped past", func() {
		rows, rowErrs := s.readAll(header +
			"2024-01-01 10:00:00,in,555-1111,120\n" +
			"not-a-time,in,555-2222,60\n" +
			"2024-01-01 11:00:00,sideways,555-3333,60\n" +
			"2024-01-01 12:00:00,out,555-4444,-5\n" +
			"2024-01-01 13:00:00,out,555-5555,30\n")
		s.Len(rows, 2)
		s.Require().Len(rowErrs, 3)

		var rowErr *RowError
		s.Require().True(errors.As(rowErrs[0], &rowErr))
		s.Equal(3, rowErr.Line)
		s.Contains(rowErr.Error(), "row 3")

		s.Require().True(errors.As(rowErrs[1], &rowErr))
		s.Equal(4, rowErr.Line)

		s.Require().True(errors.As(rowErrs[2], &rowErr))
		s.Equal(5, rowErr.Line)
	})

	s.Run("timezone-aware timestamps normalize to UTC", func() {
		rows, rowErrs := s.readAll(header + "2024-01-01T10:00:00+02:00,in,555-1111,120\n")
		s.Empty(rowErrs)
		s.Require().Len(rows, 1)
		s.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), rows[0].CallTime)
	})
}
