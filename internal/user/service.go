package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ManagerLookup answers existence checks against the managers table. Manager
// records are externally managed and read-only from this service.
type ManagerLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements the record validation and reconciliation rules: field
// normalization, manager resolution, the reassignment fork, and bulk-update
// partial-failure reporting.
//
// There is no concurrency control: every operation is an independent
// read-modify-write, so concurrent updates to the same user_id race with
// last-write-wins semantics. The store serializes individual key reads and
// writes but not multi-key sequences.
type Service struct {
	repo     *Repository
	managers ManagerLookup
}

func NewService(repo *Repository, managers ManagerLookup) *Service {
	return &Service{repo: repo, managers: managers}
}

// CreateInput carries the raw creation fields; ManagerID may be empty.
type CreateInput struct {
	FullName  string
	MobNum    string
	PanNum    string
	ManagerID string
}

// Create validates and normalizes the input, then persists a fresh active
// record. Nothing is written on any validation failure.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	if in.FullName == "" {
		return Record{}, ErrFullNameRequired
	}
	if in.MobNum == "" {
		return Record{}, ErrMobileRequired
	}
	if in.PanNum == "" {
		return Record{}, ErrPanRequired
	}

	pan := normalizePan(in.PanNum)
	if !validPan(pan) {
		return Record{}, ErrInvalidPan
	}
	mob := normalizeMobile(in.MobNum)
	if !validMobile(mob) {
		return Record{}, ErrInvalidMobile
	}

	if in.ManagerID != "" {
		ok, err := s.managers.Exists(ctx, in.ManagerID)
		if err != nil {
			return Record{}, err
		}
		if !ok {
			return Record{}, ErrInvalidManager
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	rec := Record{
		UserID:    uuid.NewString(),
		FullName:  in.FullName,
		MobNum:    mob,
		PanNum:    pan,
		ManagerID: in.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// QueryInput selects at most one lookup; earlier fields win when several are
// set.
type QueryInput struct {
	UserID    string
	MobNum    string
	ManagerID string
}

// Query resolves records by user_id, then mobile number, then manager, and
// with no filter returns the whole table. A miss by user_id is an empty
// result, not an error.
func (s *Service) Query(ctx context.Context, in QueryInput) ([]Record, error) {
	switch {
	case in.UserID != "":
		rec, err := s.repo.GetByID(ctx, in.UserID)
		if errors.Is(err, ErrNotFound) {
			return []Record{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	case in.MobNum != "":
		return s.repo.FindByMobile(ctx, normalizeMobile(in.MobNum))
	case in.ManagerID != "":
		return s.repo.FindByManager(ctx, in.ManagerID)
	default:
		return s.repo.List(ctx)
	}
}

// Delete removes a record by user_id, or by mobile number when no id is
// given. Lookups that resolve nothing report which field missed.
func (s *Service) Delete(ctx context.Context, userID, mobNum string) error {
	if userID != "" {
		if err := s.repo.Delete(ctx, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrNoUserWithID
			}
			return err
		}
		return nil
	}

	if mobNum != "" {
		matches, err := s.repo.FindByMobile(ctx, normalizeMobile(mobNum))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return ErrNoUserWithMobile
		}
		return s.repo.Delete(ctx, matches[0].UserID)
	}

	return ErrLookupFieldMissing
}

// UpdateData carries the optional bulk-update fields. Pointers distinguish
// "absent" from "present but empty".
type UpdateData struct {
	FullName  *string `json:"full_name"`
	MobNum    *string `json:"mob_num"`
	PanNum    *string `json:"pan_num"`
	ManagerID *string `json:"manager_id"`
}

func (d UpdateData) fieldCount() int {
	count := 0
	for _, set := range []bool{d.FullName != nil, d.MobNum != nil, d.PanNum != nil, d.ManagerID != nil} {
		if set {
			count++
		}
	}
	return count
}

// BulkUpdate applies update_data to each user id independently. Per-user
// failures accumulate into a BatchError while the rest of the batch proceeds;
// writes that already happened stay in place. Policy checks and the manager
// existence lookup run once, before any record is touched.
func (s *Service) BulkUpdate(ctx context.Context, userIDs []string, data UpdateData) error {
	if len(userIDs) == 0 {
		return ErrUserIDsRequired
	}
	if data.fieldCount() == 0 {
		return ErrUpdateDataRequired
	}
	// A multi-target update may change manager_id alone, never combined with
	// other field changes.
	if len(userIDs) > 1 && data.ManagerID != nil && data.fieldCount() > 1 {
		return ErrManagerOnlyBulk
	}

	// One existence lookup amortized across the batch instead of one per user.
	if data.ManagerID != nil && *data.ManagerID != "" {
		ok, err := s.managers.Exists(ctx, *data.ManagerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidManager
		}
	}

	var batchErrs []string
	for _, id := range userIDs {
		rec, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			batchErrs = append(batchErrs, fmt.Sprintf("User with user_id '%s' was not found", id))
			continue
		}
		if err != nil {
			// Store failures are fatal for the request, not a per-user outcome.
			return err
		}

		// Validate every supplied field before touching the record, so a bad
		// field never leaves a partial update behind for this user.
		if data.FullName != nil && *data.FullName == "" {
			batchErrs = append(batchErrs, fmt.Sprintf("Full name is required for user_id '%s'", id))
			continue
		}
		var mob string
		if data.MobNum != nil {
			mob = normalizeMobile(*data.MobNum)
			if !validMobile(mob) {
				batchErrs = append(batchErrs, fmt.Sprintf("Invalid mobile number for user_id '%s'", id))
				continue
			}
		}
		var pan string
		if data.PanNum != nil {
			pan = normalizePan(*data.PanNum)
			if !validPan(pan) {
				batchErrs = append(batchErrs, fmt.Sprintf("Invalid PAN number for user_id '%s'", id))
				continue
			}
		}

		if data.FullName != nil {
			rec.FullName = *data.FullName
		}
		if data.MobNum != nil {
			rec.MobNum = mob
		}
		if data.PanNum != nil {
			rec.PanNum = pan
		}

		now := time.Now().UTC().Format(time.RFC3339)

		if data.ManagerID != nil && *data.ManagerID != "" && rec.ManagerID != "" && rec.ManagerID != *data.ManagerID {
			// Reassignment fork: a user already bound to a manager is never
			// re-pointed in place. The current record is retired and a fresh
			// one carries the affiliation, preserving history.
			successor := Record{
				UserID:    uuid.NewString(),
				FullName:  rec.FullName,
				MobNum:    rec.MobNum,
				PanNum:    rec.PanNum,
				ManagerID: *data.ManagerID,
				CreatedAt: now,
				UpdatedAt: now,
				IsActive:  true,
			}
			if err := s.repo.Put(ctx, successor); err != nil {
				return err
			}
			rec.IsActive = false
		} else if data.ManagerID != nil {
			// First-time assignment, clearing, or a no-op re-assignment of the
			// same manager all mutate the record in place.
			rec.ManagerID = *data.ManagerID
		}

		rec.UpdatedAt = now
		if err := s.repo.Put(ctx, rec); err != nil {
			return err
		}
	}

	if len(batchErrs) > 0 {
		return &BatchError{Errors: batchErrs}
	}
	return nil
}
