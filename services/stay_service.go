package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type StayService struct {
	store    *store.Store
	log      *logrus.Logger
	notifier Notifier
	recorder Recorder
	now      func() time.Time
}

func NewStayService(st *store.Store, log *logrus.Logger, notifier Notifier, recorder Recorder) *StayService {
	return &StayService{
		store:    st,
		log:      log,
		notifier: notifierOrNop(notifier),
		recorder: recorderOrNop(recorder),
		now:      time.Now,
	}
}

// CheckInRequest is the front-desk check-in form. Nil pointers take the
// defaults: one adult, no children, the room's nightly price.
type CheckInRequest struct {
	GuestID       models.GuestID
	RoomNumber    models.RoomNumber
	CheckInDate   time.Time
	Adults        *int
	Children      *int
	TotalAmount   *float64
	PaymentStatus models.PaymentStatus
	PaymentMethod models.PaymentMethod
}

type CheckOutRequest struct {
	StayID        string
	CheckOutDate  time.Time
	PaymentStatus models.PaymentStatus // default Completed
	PaymentMethod models.PaymentMethod // default: keep the stay's
}

// stayTerms holds the enum and count fields checked by tag rules.
type stayTerms struct {
	Adults        int                  `json:"adults" validate:"gte=1"`
	Children      int                  `json:"children" validate:"gte=0"`
	TotalAmount   float64              `json:"totalAmount" validate:"gte=0"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus" validate:"oneof=Pending Partial Completed"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"oneof=Cash Card UPI Other"`
}

type paymentTerms struct {
	PaymentStatus models.PaymentStatus `json:"paymentStatus" validate:"oneof=Pending Partial Completed"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"oneof=Cash Card UPI Other"`
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// ----------------------------------------------------
// CheckIn: new Active stay + room Occupied, in one unit
// ----------------------------------------------------
func (s *StayService) CheckIn(ctx context.Context, req CheckInRequest) (models.Stay, error) {
	s.log.Debugf("➡️ StayService.CheckIn incoming: guest=%s room=%s", req.GuestID, req.RoomNumber)

	req.GuestID = models.GuestID(strings.TrimSpace(string(req.GuestID)))
	req.RoomNumber = models.RoomNumber(strings.TrimSpace(string(req.RoomNumber)))

	ve := &ValidationError{}
	if req.GuestID == "" {
		ve.add("guest", "Please select or create a guest")
	}
	if req.RoomNumber == "" {
		ve.add("roomNumber", "Please select a room")
	}
	if req.CheckInDate.IsZero() {
		ve.add("checkInDate", "Check-in date is required")
	}

	terms := stayTerms{
		Adults:        intOr(req.Adults, 1),
		Children:      intOr(req.Children, 0),
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
	}
	if terms.PaymentStatus == "" {
		terms.PaymentStatus = models.PaymentPending
	}
	if terms.PaymentMethod == "" {
		terms.PaymentMethod = models.PaymentCash
	}
	if req.TotalAmount != nil {
		terms.TotalAmount = *req.TotalAmount
	}
	ve.merge(validateStruct(terms))
	if err := ve.orNil(); err != nil {
		s.log.Infof("⬅️ StayService.CheckIn rejected: %v", err)
		return models.Stay{}, err
	}

	var stay models.Stay
	err := s.store.Tx(ctx, func(tx *store.Store) error {
		room, roomFound, err := tx.Rooms().Get(ctx, req.RoomNumber)
		if err != nil {
			return err
		}

		amount := terms.TotalAmount
		if req.TotalAmount == nil && roomFound {
			amount = room.PricePerNight
		}

		stay = models.Stay{
			ID:            uuid.NewString(),
			GuestID:       req.GuestID,
			RoomNumber:    req.RoomNumber,
			CheckInDate:   req.CheckInDate,
			Adults:        terms.Adults,
			Children:      terms.Children,
			TotalAmount:   amount,
			PaymentStatus: terms.PaymentStatus,
			PaymentMethod: terms.PaymentMethod,
			Status:        models.StayActive,
			CreatedAt:     s.now().UTC(),
		}
		if err := tx.Stays().Upsert(ctx, stay); err != nil {
			return err
		}

		if !roomFound {
			s.log.Warnf("⚠️ StayService.CheckIn: room %s is not in the inventory, status left untouched", req.RoomNumber)
			return nil
		}
		room.Status = models.RoomOccupied
		return tx.Rooms().Upsert(ctx, room)
	})
	if err != nil {
		s.log.Errorf("❌ StayService.CheckIn failed: %v", err)
		return models.Stay{}, fmt.Errorf("check in: %w", err)
	}

	s.recorder.CheckedIn(stay.RoomNumber)
	s.notifier.Add(fmt.Sprintf("%s checked in to Room %s", s.guestName(ctx, stay.GuestID), stay.RoomNumber))
	s.log.Infof("⬅️ StayService.CheckIn ok: stay=%s room=%s", stay.ID, stay.RoomNumber)
	return stay, nil
}

// ----------------------------------------------------
// CheckOut: close an Active stay + room Available, in one unit
// ----------------------------------------------------
func (s *StayService) CheckOut(ctx context.Context, req CheckOutRequest) (models.Stay, error) {
	s.log.Debugf("➡️ StayService.CheckOut incoming: stay=%s", req.StayID)

	req.StayID = strings.TrimSpace(req.StayID)
	ve := &ValidationError{}
	if req.StayID == "" {
		ve.add("stay", "Please select an active stay")
	}
	if req.CheckOutDate.IsZero() {
		ve.add("checkOutDate", "Check-out date is required")
	}
	if err := ve.orNil(); err != nil {
		return models.Stay{}, err
	}

	var stay models.Stay
	err := s.store.Tx(ctx, func(tx *store.Store) error {
		current, found, err := tx.Stays().Get(ctx, req.StayID)
		if err != nil {
			return err
		}
		if !found {
			return ErrStayNotFound
		}
		if !current.IsActive() {
			return ErrStayNotActive
		}
		if req.CheckOutDate.Before(current.CheckInDate) {
			return &ValidationError{Fields: map[string]string{
				"checkOutDate": "Check-out date cannot be before check-in date",
			}}
		}

		terms := paymentTerms{
			PaymentStatus: req.PaymentStatus,
			PaymentMethod: req.PaymentMethod,
		}
		if terms.PaymentStatus == "" {
			terms.PaymentStatus = models.PaymentCompleted
		}
		if terms.PaymentMethod == "" {
			terms.PaymentMethod = current.PaymentMethod
		}
		if ve := validateStruct(terms); ve != nil {
			return ve
		}

		out := req.CheckOutDate
		current.CheckOutDate = &out
		current.PaymentStatus = terms.PaymentStatus
		current.PaymentMethod = terms.PaymentMethod
		current.Status = models.StayCompleted
		if err := tx.Stays().Upsert(ctx, current); err != nil {
			return err
		}

		room, roomFound, err := tx.Rooms().Get(ctx, current.RoomNumber)
		if err != nil {
			return err
		}
		if roomFound {
			room.Status = models.RoomAvailable
			if err := tx.Rooms().Upsert(ctx, room); err != nil {
				return err
			}
		}
		stay = current
		return nil
	})
	if err != nil {
		if _, ok := IsValidation(err); ok || errors.Is(err, ErrStayNotFound) || errors.Is(err, ErrStayNotActive) {
			s.log.Infof("⬅️ StayService.CheckOut rejected: %v", err)
			return models.Stay{}, err
		}
		s.log.Errorf("❌ StayService.CheckOut failed: %v", err)
		return models.Stay{}, fmt.Errorf("check out: %w", err)
	}

	nights := stay.Nights()
	s.recorder.CheckedOut(stay.RoomNumber, nights)
	s.notifier.Add(fmt.Sprintf("%s checked out of Room %s after %d night(s)", s.guestName(ctx, stay.GuestID), stay.RoomNumber, nights))
	s.log.Infof("⬅️ StayService.CheckOut ok: stay=%s nights=%d", stay.ID, nights)
	return stay, nil
}

func (s *StayService) guestName(ctx context.Context, id models.GuestID) string {
	g, found, err := s.store.Guests().Get(ctx, id)
	if err != nil || !found {
		return models.UnknownGuestName
	}
	return g.Name
}

// ----------------------------------------------------
// Queries
// ----------------------------------------------------

func (s *StayService) Get(ctx context.Context, id string) (models.Stay, error) {
	stay, found, err := s.store.Stays().Get(ctx, id)
	if err != nil {
		return models.Stay{}, err
	}
	if !found {
		return models.Stay{}, ErrStayNotFound
	}
	return stay, nil
}

// GetWithGuest is Get plus the guest join and, for closed stays, the duration.
func (s *StayService) GetWithGuest(ctx context.Context, id string) (models.StayWithGuest, error) {
	stay, err := s.Get(ctx, id)
	if err != nil {
		return models.StayWithGuest{}, err
	}
	guests, err := s.store.Guests().List(ctx)
	if err != nil {
		return models.StayWithGuest{}, err
	}
	return joinGuest(stay, indexGuests(guests)), nil
}

func (s *StayService) List(ctx context.Context) ([]models.Stay, error) {
	return s.store.Stays().List(ctx)
}

func (s *StayService) ActiveStays(ctx context.Context) ([]models.Stay, error) {
	return s.filterStays(ctx, func(st models.Stay) bool { return st.Status == models.StayActive })
}

func (s *StayService) CompletedStays(ctx context.Context) ([]models.Stay, error) {
	return s.filterStays(ctx, func(st models.Stay) bool { return st.Status == models.StayCompleted })
}

func (s *StayService) StaysForGuest(ctx context.Context, guestID models.GuestID) ([]models.Stay, error) {
	return s.filterStays(ctx, func(st models.Stay) bool { return st.GuestID == guestID })
}

func (s *StayService) filterStays(ctx context.Context, keep func(models.Stay) bool) ([]models.Stay, error) {
	stays, err := s.store.Stays().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Stay, 0, len(stays))
	for _, st := range stays {
		if keep(st) {
			out = append(out, st)
		}
	}
	return out, nil
}

// StaysWithGuests left-joins every stay with its guest, in storage order.
func (s *StayService) StaysWithGuests(ctx context.Context) ([]models.StayWithGuest, error) {
	stays, err := s.store.Stays().List(ctx)
	if err != nil {
		return nil, err
	}
	guests, err := s.store.Guests().List(ctx)
	if err != nil {
		return nil, err
	}
	return joinGuests(stays, guests), nil
}

// ActiveWithGuests is the check-out picker list.
func (s *StayService) ActiveWithGuests(ctx context.Context) ([]models.StayWithGuest, error) {
	return s.Records(ctx, StayFilter{Status: FilterActive})
}

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// StayFilter narrows the records list. Zero values do not filter.
type StayFilter struct {
	Status StatusFilter
	// From keeps stays that checked in on or after it.
	From time.Time
	// To keeps stays whose check-out, or check-in while still open, falls on or before that day.
	To     time.Time
	Search string
}

// Records returns the joined stays matching f, most recent check-in first.
func (s *StayService) Records(ctx context.Context, f StayFilter) ([]models.StayWithGuest, error) {
	all, err := s.StaysWithGuests(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.TrimSpace(f.Search)
	lower := strings.ToLower(term)
	var toEnd time.Time
	if !f.To.IsZero() {
		// midnight after the calendar day of To, in To's own zone
		y, m, d := f.To.Date()
		toEnd = time.Date(y, m, d+1, 0, 0, 0, 0, f.To.Location())
	}

	out := make([]models.StayWithGuest, 0, len(all))
	for _, sw := range all {
		switch f.Status {
		case FilterActive:
			if sw.Status != models.StayActive {
				continue
			}
		case FilterCompleted:
			if sw.Status != models.StayCompleted {
				continue
			}
		}

		if !f.From.IsZero() && sw.CheckInDate.Before(f.From) {
			continue
		}
		if !toEnd.IsZero() {
			ref := sw.CheckInDate
			if sw.CheckOutDate != nil {
				ref = *sw.CheckOutDate
			}
			if !ref.Before(toEnd) {
				continue
			}
		}

		if term != "" && !matchesStay(sw, term, lower) {
			continue
		}
		out = append(out, sw)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckInDate.After(out[j].CheckInDate)
	})
	return out, nil
}

func matchesStay(sw models.StayWithGuest, term, lower string) bool {
	if sw.Guest != nil {
		if strings.Contains(strings.ToLower(sw.Guest.Name), lower) || strings.Contains(sw.Guest.Phone, term) {
			return true
		}
	}
	return strings.Contains(string(sw.RoomNumber), term) || strings.Contains(sw.ID, term)
}

// ClearAll drops every stay record. Room statuses are not touched.
func (s *StayService) ClearAll(ctx context.Context) error {
	s.log.Warn("⚠️ StayService.ClearAll: deleting all stay records")
	if err := s.store.Stays().Clear(ctx); err != nil {
		return fmt.Errorf("clear stays: %w", err)
	}
	return nil
}

// ----------------------------------------------------
// join helpers
// ----------------------------------------------------

func indexGuests(guests []models.Guest) map[models.GuestID]models.Guest {
	byID := make(map[models.GuestID]models.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}
	return byID
}

// joinGuest resolves the guest or falls back to the placeholder name.
func joinGuest(stay models.Stay, byID map[models.GuestID]models.Guest) models.StayWithGuest {
	out := models.StayWithGuest{Stay: stay, GuestName: models.UnknownGuestName}
	if g, ok := byID[stay.GuestID]; ok {
		out.Guest = &g
		out.GuestName = g.Name
	}
	if stay.CheckOutDate != nil {
		nights := stay.Nights()
		out.Duration = &nights
	}
	return out
}

func joinGuests(stays []models.Stay, guests []models.Guest) []models.StayWithGuest {
	byID := indexGuests(guests)
	out := make([]models.StayWithGuest, 0, len(stays))
	for _, st := range stays {
		out = append(out, joinGuest(st, byID))
	}
	return out
}
