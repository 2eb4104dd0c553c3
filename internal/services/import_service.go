package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/repository"
)

var (
	ErrEmptyImport       = errors.New("import file is empty")
	ErrMissingCodeColumn = errors.New("import file has no code column")
)

// importColumns are the recognized header names, matched after
// lower-casing and trimming.
var importColumns = []string{"code", "name", "position", "role", "status"}

// ImportService ingests roster CSV uploads. Rows are processed
// sequentially; a bad row is recorded and the batch continues.
type ImportService struct {
	actorCodes repository.ActorCodeRepository
	binding    *BindingService
}

func NewImportService(actorCodes repository.ActorCodeRepository, binding *BindingService) *ImportService {
	return &ImportService{actorCodes: actorCodes, binding: binding}
}

// ImportRoster upserts ActorCodes from a CSV stream (match by code) and
// promotes every active row to a login account. Returns aggregate counts
// plus the per-row error list.
func (s *ImportService) ImportRoster(firmID string, r io.Reader) (*dto.ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrEmptyImport
	}

	cols := make(map[string]int, len(importColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, known := range importColumns {
			if name == known {
				cols[known] = i
			}
		}
	}
	if _, ok := cols["code"]; !ok {
		return nil, ErrMissingCodeColumn
	}

	summary := &dto.ImportSummary{Errors: []dto.ImportRowError{}}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Errored++
			summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		code := NormalizeCode(field("code"))
		if code == "" {
			summary.Errored++
			summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row, Message: "code is required"})
			continue
		}

		name := NormalizeName(field("name"))
		position := strings.ToLower(field("position"))
		role := field("role")
		if role == "" {
			role = "employee"
		}
		status := NormalizeStatus(field("status"))
		if status == "" {
			status = models.StatusActive
		}

		existing, err := s.actorCodes.FindByCode(firmID, code)
		if err != nil {
			summary.Errored++
			summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		inserted := existing == nil
		if inserted {
			ac := &models.ActorCode{
				FirmID:   firmID,
				Code:     code,
				Name:     name,
				Position: position,
				Role:     role,
				Status:   status,
			}
			err = s.actorCodes.Insert(ac)
		} else {
			existing.Name = name
			existing.Position = position
			existing.Role = role
			existing.Status = status
			err = s.actorCodes.Update(existing)
		}
		if err != nil {
			summary.Errored++
			summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		if status == models.StatusActive {
			// An already-provisioned code is a no-op here, not a row error.
			if _, _, err := s.binding.Promote(firmID, code); err != nil {
				summary.Errored++
				summary.Errors = append(summary.Errors, dto.ImportRowError{
					Row:     row,
					Message: fmt.Sprintf("provisioning failed: %v", err),
				})
				continue
			}
		}

		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	slog.Info("roster import finished",
		"firm_id", firmID,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"errored", summary.Errored,
	)
	return summary, nil
}
