package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guestdesk-backend/internal/model"
	"guestdesk-backend/internal/validate"
)

// Store defines the persistence operations for the occupancy tracker.
type Store interface {
	CheckIn(ctx context.Context, req CheckinRequest) (*model.Booking, error)
	CheckOut(ctx context.Context, propertyID string, expectedVersion *int64) (*model.Booking, error)
	MarkCleaned(ctx context.Context, propertyID string, expectedVersion *int64) error
	GetPropertyStatus(ctx context.Context, propertyID string) (*StatusView, error)
	CurrentBooking(ctx context.Context, propertyID string) (*model.Booking, error)
	ListBookings(ctx context.Context, propertyID string) ([]model.Booking, error)
	ListProperties(ctx context.Context) ([]PropertySummary, error)
	StaleCleaningProperties(ctx context.Context, now time.Time, staleAfter time.Duration) ([]string, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for collaborators that manage their
// own models (subscriptions, notification worker).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// CheckIn validates the guest submission and, in a single transaction,
// records the booking, marks the property occupied, and appends to the
// property's ledger. A check-in against an occupied property fails unless
// the request forces a checkout of the previous booking first.
func (s *gormStore) CheckIn(ctx context.Context, req CheckinRequest) (*model.Booking, error) {
	if req.PropertyID == "" {
		return nil, fmt.Errorf("%w: propertyId is required", ErrValidation)
	}
	if req.PropertyName == "" {
		return nil, fmt.Errorf("%w: propertyName is required", ErrValidation)
	}
	if err := validate.Checkin(&req.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now().UTC()
	booking := &model.Booking{
		ID:             uuid.NewString(),
		PropertyID:     req.PropertyID,
		PropertyName:   req.PropertyName,
		FirstName:      req.Data.FirstName,
		LastName:       req.Data.LastName,
		Email:          req.Data.Email,
		Phone:          req.Data.Phone,
		StreetAddress:  req.Data.StreetAddress,
		PostalCode:     req.Data.PostalCode,
		City:           req.Data.City,
		Country:        req.Data.Country,
		NumberOfGuests: req.Data.NumberOfGuests,
		ArrivalDate:    req.Data.ArrivalDate,
		DepartureDate:  req.Data.DepartureDate,
		Comments:       req.Data.Comments,
		CheckinTime:    now,
		Status:         model.BookingCheckedIn,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property := model.Property{ID: req.PropertyID, Name: req.PropertyName}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&property).Error; err != nil {
			return fmt.Errorf("failed to upsert property %s: %w", req.PropertyID, err)
		}

		var status model.PropertyStatus
		err := tx.Where("property_id = ?", req.PropertyID).First(&status).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = model.PropertyStatus{
				PropertyID:       req.PropertyID,
				Status:           model.StatusOccupied,
				CurrentBookingID: &booking.ID,
				Version:          1,
			}
			if err := tx.Create(&status).Error; err != nil {
				return fmt.Errorf("failed to create status for property %s: %w", req.PropertyID, err)
			}
		case err != nil:
			return fmt.Errorf("failed to read status for property %s: %w", req.PropertyID, err)
		default:
			if status.Status == model.StatusOccupied && status.CurrentBookingID != nil {
				if !req.Force {
					return fmt.Errorf("%w: property %s has an active booking", ErrAlreadyOccupied, req.PropertyID)
				}
				if err := closeBooking(tx, *status.CurrentBookingID, now); err != nil {
					return err
				}
			}
			res := tx.Model(&model.PropertyStatus{}).
				Where("property_id = ? AND version = ?", req.PropertyID, status.Version).
				Updates(map[string]any{
					"status":             model.StatusOccupied,
					"current_booking_id": booking.ID,
					"last_reminded_at":   nil,
					"version":            status.Version + 1,
					"updated_at":         now,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update status for property %s: %w", req.PropertyID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: property %s changed concurrently", ErrVersionConflict, req.PropertyID)
			}
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to persist booking %s: %w", booking.ID, err)
		}

		entry := model.LedgerEntry{PropertyID: req.PropertyID, BookingID: booking.ID}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry for property %s: %w", req.PropertyID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// closeBooking marks a still-active booking as checked out. Already closed
// bookings are left untouched.
func closeBooking(tx *gorm.DB, bookingID string, now time.Time) error {
	res := tx.Model(&model.Booking{}).
		Where("id = ? AND status = ?", bookingID, model.BookingCheckedIn).
		Updates(map[string]any{
			"status":        model.BookingCheckedOut,
			"checkout_time": now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to close booking %s: %w", bookingID, res.Error)
	}
	return nil
}

// CheckOut transitions an occupied property to needs_cleaning and closes
// its active booking. expectedVersion, when non-nil, must match the version
// the caller last read.
func (s *gormStore) CheckOut(ctx context.Context, propertyID string, expectedVersion *int64) (*model.Booking, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("%w: propertyId is required", ErrValidation)
	}

	now := time.Now().UTC()
	var booking model.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.PropertyStatus
		err := tx.Where("property_id = ?", propertyID).First(&status).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w for property %s", ErrNoActiveBooking, propertyID)
		}
		if err != nil {
			return fmt.Errorf("failed to read status for property %s: %w", propertyID, err)
		}
		if status.CurrentBookingID == nil {
			return fmt.Errorf("%w for property %s", ErrNoActiveBooking, propertyID)
		}
		if expectedVersion != nil && *expectedVersion != status.Version {
			return fmt.Errorf("%w: expected %d, have %d", ErrVersionConflict, *expectedVersion, status.Version)
		}

		if err := tx.Where("id = ?", *status.CurrentBookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %s", ErrNotFound, *status.CurrentBookingID)
			}
			return fmt.Errorf("failed to read booking %s: %w", *status.CurrentBookingID, err)
		}

		if err := closeBooking(tx, booking.ID, now); err != nil {
			return err
		}
		booking.Status = model.BookingCheckedOut
		booking.CheckoutTime = &now

		res := tx.Model(&model.PropertyStatus{}).
			Where("property_id = ? AND version = ?", propertyID, status.Version).
			Updates(map[string]any{
				"status":             model.StatusNeedsCleaning,
				"current_booking_id": nil,
				"last_checkout_time": now,
				"version":            status.Version + 1,
				"updated_at":         now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update status for property %s: %w", propertyID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: property %s changed concurrently", ErrVersionConflict, propertyID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// MarkCleaned resets a needs_cleaning property back to vacant. A property
// with no tracked status is already vacant, so the call is a no-op. An
// occupied property cannot be marked cleaned.
func (s *gormStore) MarkCleaned(ctx context.Context, propertyID string, expectedVersion *int64) error {
	if propertyID == "" {
		return fmt.Errorf("%w: propertyId is required", ErrValidation)
	}

	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.PropertyStatus
		err := tx.Where("property_id = ?", propertyID).First(&status).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read status for property %s: %w", propertyID, err)
		}
		if status.Status == model.StatusOccupied && status.CurrentBookingID != nil {
			return fmt.Errorf("%w: property %s has an active booking", ErrAlreadyOccupied, propertyID)
		}
		if expectedVersion != nil && *expectedVersion != status.Version {
			return fmt.Errorf("%w: expected %d, have %d", ErrVersionConflict, *expectedVersion, status.Version)
		}

		res := tx.Model(&model.PropertyStatus{}).
			Where("property_id = ? AND version = ?", propertyID, status.Version).
			Updates(map[string]any{
				"status":             model.StatusVacant,
				"current_booking_id": nil,
				"last_checkout_time": nil,
				"last_reminded_at":   nil,
				"version":            status.Version + 1,
				"updated_at":         now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update status for property %s: %w", propertyID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: property %s changed concurrently", ErrVersionConflict, propertyID)
		}
		return nil
	})
}

// GetPropertyStatus is a pure read: status row (absent means vacant) plus
// the resolved current booking, if any. A dangling booking pointer yields a
// nil currentBooking rather than an error.
func (s *gormStore) GetPropertyStatus(ctx context.Context, propertyID string) (*StatusView, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("%w: propertyId is required", ErrValidation)
	}

	view := &StatusView{PropertyID: propertyID, Status: model.StatusVacant}

	var status model.PropertyStatus
	err := s.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read status for property %s: %w", propertyID, err)
	}

	view.Status = status.Status
	view.LastCheckout = status.LastCheckoutTime
	view.Version = status.Version

	if status.CurrentBookingID != nil {
		var booking model.Booking
		err := s.db.WithContext(ctx).Where("id = ?", *status.CurrentBookingID).First(&booking).Error
		if err == nil {
			view.CurrentBooking = &booking
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to read booking %s: %w", *status.CurrentBookingID, err)
		}
	}
	return view, nil
}

// CurrentBooking returns the active booking for a property, or nil.
func (s *gormStore) CurrentBooking(ctx context.Context, propertyID string) (*model.Booking, error) {
	view, err := s.GetPropertyStatus(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return view.CurrentBooking, nil
}

// ListBookings resolves the property's ledger to full booking records, most
// recent check-in first. Ledger rows whose booking record is missing drop
// out of the join instead of failing the query.
func (s *gormStore) ListBookings(ctx context.Context, propertyID string) ([]model.Booking, error) {
	if propertyID == "" {
		return nil, fmt.Errorf("%w: propertyId is required", ErrValidation)
	}

	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Joins("JOIN ledger_entries le ON le.booking_id = bookings.id").
		Where("le.property_id = ?", propertyID).
		Order("bookings.checkin_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for property %s: %w", propertyID, err)
	}
	return bookings, nil
}

// ListProperties aggregates a status roll-up across all known properties.
func (s *gormStore) ListProperties(ctx context.Context) ([]PropertySummary, error) {
	var properties []model.Property
	if err := s.db.WithContext(ctx).Order("name").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	var statuses []model.PropertyStatus
	if err := s.db.WithContext(ctx).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list property statuses: %w", err)
	}
	statusMap := make(map[string]model.PropertyStatus, len(statuses))
	for _, st := range statuses {
		statusMap[st.PropertyID] = st
	}

	type aggRow struct {
		PropertyID    string
		TotalBookings int64
	}
	var aggs []aggRow
	if err := s.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Select("property_id as property_id, COUNT(*) as total_bookings").
		Group("property_id").
		Scan(&aggs).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger: %w", err)
	}
	aggMap := make(map[string]int64, len(aggs))
	for _, a := range aggs {
		aggMap[a.PropertyID] = a.TotalBookings
	}

	summaries := make([]PropertySummary, 0, len(properties))
	for _, p := range properties {
		summary := PropertySummary{ID: p.ID, Name: p.Name, Status: model.StatusVacant}
		if st, ok := statusMap[p.ID]; ok {
			summary.Status = st.Status
			summary.LastCheckout = st.LastCheckoutTime
		}
		summary.TotalBookings = aggMap[p.ID]
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// StaleCleaningProperties returns the properties that have sat in
// needs_cleaning for longer than staleAfter and have not been reminded
// within the same window, stamping last_reminded_at so each sweep notifies
// at most once.
func (s *gormStore) StaleCleaningProperties(ctx context.Context, now time.Time, staleAfter time.Duration) ([]string, error) {
	cutoff := now.Add(-staleAfter)

	var ids []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale []model.PropertyStatus
		err := tx.Where("status = ? AND last_checkout_time <= ?", model.StatusNeedsCleaning, cutoff).
			Where("last_reminded_at IS NULL OR last_reminded_at <= ?", cutoff).
			Find(&stale).Error
		if err != nil {
			return fmt.Errorf("failed to query stale cleaning properties: %w", err)
		}
		for _, st := range stale {
			res := tx.Model(&model.PropertyStatus{}).
				Where("property_id = ? AND version = ?", st.PropertyID, st.Version).
				Update("last_reminded_at", now)
			if res.Error != nil {
				return fmt.Errorf("failed to stamp reminder for property %s: %w", st.PropertyID, res.Error)
			}
			if res.RowsAffected > 0 {
				ids = append(ids, st.PropertyID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
