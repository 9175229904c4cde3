package services

import (
	"context"
	"sync"
	"time"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/pkg/apperrors"
)

// In-memory store fakes. They mirror the database semantics the services
// rely on, including the unique-constraint behavior of the real tables.

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

type sentNotification struct {
	UserIDs []int64
	Type    string
	Title   string
	Message string
}

func (f *fakeNotifier) Notify(_ context.Context, userIDs []int64, notifType, title, message string) {
	if len(userIDs) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{UserIDs: userIDs, Type: notifType, Title: title, Message: message})
}

func (f *fakeNotifier) sentOfType(notifType string) []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentNotification
	for _, n := range f.sent {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

type fakeMailer struct {
	mu       sync.Mutex
	fail     bool
	sent     []string
	lastCode string
}

func (f *fakeMailer) Send(_ context.Context, toEmail, _, _ string) error {
	return f.record(toEmail, "")
}

func (f *fakeMailer) SendVerificationCode(_ context.Context, toEmail, code string) error {
	return f.record(toEmail, code)
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, toEmail, _, _ string) error {
	return f.record(toEmail, "")
}

func (f *fakeMailer) record(toEmail, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return apperrors.ErrConflict
	}
	f.sent = append(f.sent, toEmail)
	f.lastCode = code
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, userID int64, name, department *string, year *int, profileImage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if department != nil {
		u.Department = department
	}
	if year != nil {
		u.Year = year
	}
	if profileImage != nil {
		u.ProfileImage = profileImage
	}
	return nil
}

func (f *fakeUserStore) ListAdminIDs(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int64{}
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

type fakeClubStore struct {
	mu          sync.Mutex
	nextID      int64
	clubs       map[int64]*models.Club
	memberships *fakeMembershipStore
}

func newFakeClubStore(memberships *fakeMembershipStore) *fakeClubStore {
	return &fakeClubStore{nextID: 1, clubs: map[int64]*models.Club{}, memberships: memberships}
}

func (f *fakeClubStore) CreateWithLead(ctx context.Context, club *models.Club) error {
	f.mu.Lock()
	club.ID = f.nextID
	f.nextID++
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	club.MemberCount = 1
	clone := *club
	f.clubs[club.ID] = &clone
	f.mu.Unlock()

	return f.memberships.Create(ctx, &models.Membership{
		ClubID: club.ID,
		UserID: club.CreatedBy,
		Role:   models.MemberRoleLead,
		Status: models.MembershipApproved,
	})
}

func (f *fakeClubStore) GetByID(_ context.Context, id int64) (*models.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[id]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeClubStore) GetAll(_ context.Context, category, status, search string) ([]models.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Club{}
	for _, c := range f.clubs {
		if category != "" && c.Category != category {
			continue
		}
		if status != "" && string(c.Status) != status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClubStore) Update(_ context.Context, clubID int64, name, description, category, logo *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[clubID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = description
	}
	if category != nil {
		c.Category = *category
	}
	if logo != nil {
		c.Logo = logo
	}
	return nil
}

func (f *fakeClubStore) SetStatus(_ context.Context, clubID int64, status models.ClubStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[clubID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeClubStore) RefreshMemberCount(ctx context.Context, clubID int64) error {
	members, err := f.memberships.ListByClub(ctx, clubID, models.MembershipApproved)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clubs[clubID]; ok {
		c.MemberCount = len(members)
	}
	return nil
}

func (f *fakeClubStore) RefreshRating(_ context.Context, _ int64) error { return nil }

type fakeMembershipStore struct {
	mu          sync.Mutex
	nextID      int64
	memberships map[int64]*models.Membership
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{nextID: 1, memberships: map[int64]*models.Membership{}}
}

func (f *fakeMembershipStore) Create(_ context.Context, m *models.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.memberships {
		if existing.ClubID == m.ClubID && existing.UserID == m.UserID {
			return apperrors.ErrAlreadyMember
		}
	}
	m.ID = f.nextID
	f.nextID++
	m.JoinedAt = time.Now()
	clone := *m
	f.memberships[m.ID] = &clone
	return nil
}

func (f *fakeMembershipStore) GetByID(_ context.Context, id int64) (*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.memberships[id]
	if !ok {
		return nil, apperrors.ErrMembershipNotFound
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMembershipStore) GetByClubAndUser(_ context.Context, clubID, userID int64) (*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.ClubID == clubID && m.UserID == userID {
			clone := *m
			return &clone, nil
		}
	}
	return nil, apperrors.ErrMembershipNotFound
}

func (f *fakeMembershipStore) SetStatus(_ context.Context, id int64, status models.MembershipStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.memberships[id]
	if !ok {
		return apperrors.ErrMembershipNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMembershipStore) Delete(_ context.Context, clubID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, m := range f.memberships {
		if m.ClubID == clubID && m.UserID == userID {
			delete(f.memberships, id)
			return nil
		}
	}
	return nil
}

func (f *fakeMembershipStore) ListByClub(_ context.Context, clubID int64, status models.MembershipStatus) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Membership{}
	for _, m := range f.memberships {
		if m.ClubID == clubID && (status == "" || m.Status == status) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) ListByUser(_ context.Context, userID int64) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Membership{}
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) ListManagerIDs(_ context.Context, clubID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int64{}
	for _, m := range f.memberships {
		if m.ClubID == clubID && m.Status == models.MembershipApproved && models.IsManagerRole(m.Role) {
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) ListApprovedMemberIDs(_ context.Context, clubID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int64{}
	for _, m := range f.memberships {
		if m.ClubID == clubID && m.Status == models.MembershipApproved {
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{nextID: 1, events: map[int64]*models.Event{}}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = f.nextID
	f.nextID++
	event.CreatedAt = time.Now()
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEventStore) GetAll(_ context.Context, clubID int64, eventType, status, search string, upcomingOnly bool) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Event{}
	for _, e := range f.events {
		if clubID > 0 && e.ClubID != clubID {
			continue
		}
		if status != "" && string(e.Status) != status {
			continue
		}
		if upcomingOnly && e.Status != models.EventUpcoming {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	clone := *event
	f.events[event.ID] = &clone
	return nil
}

func (f *fakeEventStore) SetStatus(_ context.Context, eventID int64, status models.EventStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if e.Status != models.EventUpcoming {
		return apperrors.NewBadRequestError("event is not in upcoming state")
	}
	e.Status = status
	return nil
}

type fakeRegistrationStore struct {
	mu            sync.Mutex
	nextID        int64
	registrations map[int64]*models.Registration
	certificates  *fakeCertificateStore
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{nextID: 1, registrations: map[int64]*models.Registration{}}
}

func (f *fakeRegistrationStore) Create(_ context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.registrations {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return apperrors.ErrAlreadyRegistered
		}
	}
	reg.ID = f.nextID
	f.nextID++
	reg.RegisteredAt = time.Now()
	clone := *reg
	f.registrations[reg.ID] = &clone
	return nil
}

func (f *fakeRegistrationStore) GetByEventAndUser(_ context.Context, eventID, userID int64) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			clone := *reg
			return &clone, nil
		}
	}
	return nil, apperrors.ErrRegistrationNotFound
}

func (f *fakeRegistrationStore) Reactivate(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.registrations[id]
	if !ok || reg.Status != models.RegistrationCancelled {
		return apperrors.ErrAlreadyRegistered
	}
	reg.Status = models.RegistrationRegistered
	reg.RegisteredAt = time.Now()
	reg.CheckedInAt = nil
	return nil
}

func (f *fakeRegistrationStore) Cancel(_ context.Context, eventID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.registrations {
		if reg.EventID == eventID && reg.UserID == userID && reg.Status != models.RegistrationCancelled {
			reg.Status = models.RegistrationCancelled
		}
	}
	return nil
}

func (f *fakeRegistrationStore) CheckIn(_ context.Context, eventID, userID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.registrations {
		if reg.EventID == eventID && reg.UserID == userID && reg.Status == models.RegistrationRegistered {
			reg.Status = models.RegistrationAttended
			checkedIn := at
			reg.CheckedInAt = &checkedIn
			return nil
		}
	}
	return apperrors.ErrRegistrationNotFound
}

func (f *fakeRegistrationStore) CountActive(_ context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, reg := range f.registrations {
		if reg.EventID == eventID && reg.Status != models.RegistrationCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeRegistrationStore) ListByEvent(_ context.Context, eventID int64, status models.RegistrationStatus) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range f.registrations {
		if reg.EventID == eventID && (status == "" || reg.Status == status) {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) ListByUser(_ context.Context, userID int64) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range f.registrations {
		if reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) ListUncertifiedAttendees(ctx context.Context, eventID int64) ([]int64, error) {
	attendees, err := f.ListByEvent(ctx, eventID, models.RegistrationAttended)
	if err != nil {
		return nil, err
	}
	out := []int64{}
	for _, reg := range attendees {
		certified := false
		if f.certificates != nil {
			certified, _ = f.certificates.exists(reg.UserID, eventID)
		}
		if !certified {
			out = append(out, reg.UserID)
		}
	}
	return out, nil
}

type fakeCertificateStore struct {
	mu           sync.Mutex
	nextID       int64
	certificates map[int64]*models.Certificate
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{nextID: 1, certificates: map[int64]*models.Certificate{}}
}

func (f *fakeCertificateStore) exists(userID, eventID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certificates {
		if c.UserID == userID && c.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCertificateStore) Create(_ context.Context, cert *models.Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.certificates {
		if existing.UserID == cert.UserID && existing.EventID == cert.EventID {
			return apperrors.ErrCertificateExists
		}
		if existing.VerificationCode == cert.VerificationCode {
			return apperrors.ErrConflict
		}
	}
	cert.ID = f.nextID
	f.nextID++
	cert.IssuedAt = time.Now()
	clone := *cert
	f.certificates[cert.ID] = &clone
	return nil
}

func (f *fakeCertificateStore) GetByCode(_ context.Context, code string) (*models.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certificates {
		if c.VerificationCode == code {
			clone := *c
			clone.User = &models.User{Name: "Holder"}
			clone.Event = &models.Event{Title: "Event"}
			return &clone, nil
		}
	}
	return nil, apperrors.ErrCertificateNotFound
}

func (f *fakeCertificateStore) ListByUser(_ context.Context, userID int64) ([]models.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Certificate{}
	for _, c := range f.certificates {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}
