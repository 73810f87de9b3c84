package member

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/hcm-member-service/internal/core/apperr"
	"github.com/ogurasousui/hcm-member-service/internal/core/attendance"
)

func cloneMember(m *Member) *Member {
	if m == nil {
		return nil
	}
	c := *m
	c.DepartmentRef = cloneInt64(m.DepartmentRef)
	c.EmployeeNumber = cloneString(m.EmployeeNumber)
	c.AttendanceGroupRef = cloneInt64(m.AttendanceGroupRef)
	c.CreatedByRef = cloneInt64(m.CreatedByRef)
	if m.DateOfEmployment != nil {
		d := *m.DateOfEmployment
		c.DateOfEmployment = &d
	}
	return &c
}

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeMemberRepo struct {
	members  map[int64]*Member
	sequence int64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[int64]*Member)}
}

func (r *fakeMemberRepo) checkUnique(m *Member) error {
	for _, existing := range r.members {
		if existing.ID == m.ID {
			continue
		}
		if existing.UserRef == m.UserRef {
			return ErrUserAlreadyBound
		}
		if m.EmployeeNumber != nil && existing.EmployeeNumber != nil && *existing.EmployeeNumber == *m.EmployeeNumber {
			return ErrEmployeeNumberTaken
		}
	}
	return nil
}

func (r *fakeMemberRepo) Create(_ context.Context, m *Member) (*Member, error) {
	if err := r.checkUnique(m); err != nil {
		return nil, err
	}
	clone := cloneMember(m)
	r.sequence++
	clone.ID = r.sequence
	r.members[clone.ID] = clone
	return cloneMember(clone), nil
}

func (r *fakeMemberRepo) Update(_ context.Context, m *Member) (*Member, error) {
	if _, ok := r.members[m.ID]; !ok {
		return nil, ErrMemberNotFound
	}
	if err := r.checkUnique(m); err != nil {
		return nil, err
	}
	r.members[m.ID] = cloneMember(m)
	return cloneMember(m), nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id int64) (*Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return cloneMember(m), nil
}

func (r *fakeMemberRepo) FindByUserRef(_ context.Context, userRef int64) (*Member, error) {
	for _, m := range r.members {
		if m.UserRef == userRef {
			return cloneMember(m), nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *fakeMemberRepo) ExistsByUserRef(_ context.Context, userRef int64) (bool, error) {
	for _, m := range r.members {
		if m.UserRef == userRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) ExistsByEmployeeNumber(_ context.Context, number string) (bool, error) {
	for _, m := range r.members {
		if m.EmployeeNumber != nil && *m.EmployeeNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) ListByAttendanceGroup(_ context.Context, groupID int64) ([]*Member, error) {
	var out []*Member
	for _, m := range r.sorted() {
		if m.AttendanceGroupRef != nil && *m.AttendanceGroupRef == groupID {
			out = append(out, cloneMember(m))
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) CountByAttendanceGroup(ctx context.Context, groupID int64) (int64, error) {
	members, _ := r.ListByAttendanceGroup(ctx, groupID)
	return int64(len(members)), nil
}

func (r *fakeMemberRepo) List(_ context.Context, filter ListFilter) ([]*Member, int64, error) {
	term := strings.ToLower(filter.Term)
	var filtered []*Member
	for _, m := range r.sorted() {
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(m.FirstName), term) &&
			!strings.Contains(strings.ToLower(m.LastName), term) {
			continue
		}
		filtered = append(filtered, cloneMember(m))
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})

	total := int64(len(filtered))
	if filter.Offset >= len(filtered) {
		return []*Member{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[filter.Offset:end], total, nil
}

func (r *fakeMemberRepo) sorted() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeGroupRepo struct {
	groups map[int64]*attendance.Group
}

func (r fakeGroupRepo) FindByID(_ context.Context, id int64) (*attendance.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, attendance.ErrGroupNotFound
	}
	copy := *g
	return &copy, nil
}

func strPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestService_CreateMember_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeMemberRepo()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubClock{now: now}, nil)

	employed := time.Date(2024, 4, 1, 15, 30, 0, 0, time.UTC)
	created, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserRef:  42,
		ActorRef: int64Ptr(7),
		ProfileFields: ProfileFields{
			FirstName:        strPtr("  Ana "),
			LastName:         strPtr("Silva"),
			EmployeeNumber:   strPtr(" E-1 "),
			Country:          strPtr("Portugal"),
			DateOfEmployment: &employed,
		},
	})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	if created.ID == 0 {
		t.Fatalf("expected store-assigned id")
	}
	if created.Status != StatusActive {
		t.Fatalf("expected default status ACTIVE, got %s", created.Status)
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at == updated_at == now, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.FirstName != "Ana" {
		t.Fatalf("expected trimmed first name, got %q", created.FirstName)
	}
	if created.EmployeeNumber == nil || *created.EmployeeNumber != "E-1" {
		t.Fatalf("expected employee number E-1, got %+v", created.EmployeeNumber)
	}
	if created.CreatedByRef == nil || *created.CreatedByRef != 7 {
		t.Fatalf("expected created_by 7, got %+v", created.CreatedByRef)
	}
	if created.DateOfEmployment == nil || !created.DateOfEmployment.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date of employment truncated to date, got %+v", created.DateOfEmployment)
	}
}

func TestService_CreateMember_WithoutActor(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)

	created, err := svc.CreateMember(context.Background(), CreateMemberInput{UserRef: 1})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}
	if created.CreatedByRef != nil {
		t.Fatalf("expected nil created_by, got %v", *created.CreatedByRef)
	}
	if created.EmployeeNumber != nil {
		t.Fatalf("expected no employee number")
	}
}

func TestService_CreateMember_Conflicts(t *testing.T) {
	t.Parallel()

	repo := newFakeMemberRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	if _, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 42, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-1")}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 42, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-2")}})
	if !errors.Is(err, ErrUserAlreadyBound) || !apperr.IsConflict(err) {
		t.Fatalf("expected ErrUserAlreadyBound conflict, got %v", err)
	}

	_, err = svc.CreateMember(ctx, CreateMemberInput{UserRef: 43, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-1")}})
	if !errors.Is(err, ErrEmployeeNumberTaken) || !apperr.IsConflict(err) {
		t.Fatalf("expected ErrEmployeeNumberTaken conflict, got %v", err)
	}

	if len(repo.members) != 1 {
		t.Fatalf("expected only the first member to be stored, got %d", len(repo.members))
	}
}

func TestService_CreateMember_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateMemberInput
		wantErr error
	}{
		{name: "missing user", in: CreateMemberInput{}, wantErr: ErrInvalidUserRef},
		{name: "first name too long", in: CreateMemberInput{UserRef: 1, ProfileFields: ProfileFields{FirstName: strPtr(strings.Repeat("a", 101))}}, wantErr: ErrFieldTooLong},
		{name: "gender too long", in: CreateMemberInput{UserRef: 1, ProfileFields: ProfileFields{Gender: strPtr(strings.Repeat("x", 21))}}, wantErr: ErrFieldTooLong},
		{name: "bad department", in: CreateMemberInput{UserRef: 1, ProfileFields: ProfileFields{DepartmentRef: int64Ptr(0)}}, wantErr: ErrInvalidDepartmentRef},
		{name: "bad group", in: CreateMemberInput{UserRef: 1, ProfileFields: ProfileFields{AttendanceGroupRef: int64Ptr(-1)}}, wantErr: ErrInvalidGroupRef},
	}

	for _, tt := range tests {
		_, err := svc.CreateMember(ctx, tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
		if !apperr.IsValidation(err) {
			t.Fatalf("%s: expected validation kind, got %v", tt.name, err)
		}
	}
}

func TestService_CreateMember_ChecksGroupDirectory(t *testing.T) {
	t.Parallel()

	groups := fakeGroupRepo{groups: map[int64]*attendance.Group{
		7: {ID: 7, Name: "HQ", TrackingMode: attendance.TrackingModeAll},
	}}
	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil, WithGroupDirectory(groups))

	if _, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserRef:       1,
		ProfileFields: ProfileFields{AttendanceGroupRef: int64Ptr(8)},
	}); !errors.Is(err, attendance.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	created, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserRef:       1,
		ProfileFields: ProfileFields{AttendanceGroupRef: int64Ptr(7)},
	})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}
	if created.AttendanceGroupRef == nil || *created.AttendanceGroupRef != 7 {
		t.Fatalf("expected group 7, got %+v", created.AttendanceGroupRef)
	}
}

func TestService_GetMember(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 5})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	found, err := svc.GetMember(ctx, GetMemberInput{ID: created.ID})
	if err != nil {
		t.Fatalf("GetMember returned error: %v", err)
	}
	if found.UserRef != 5 {
		t.Fatalf("expected user ref 5, got %d", found.UserRef)
	}

	byUser, err := svc.GetMemberByUser(ctx, GetMemberByUserInput{UserRef: 5})
	if err != nil {
		t.Fatalf("GetMemberByUser returned error: %v", err)
	}
	if byUser.ID != created.ID {
		t.Fatalf("expected member %d, got %d", created.ID, byUser.ID)
	}

	if _, err := svc.GetMember(ctx, GetMemberInput{ID: 999}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetMemberByUser(ctx, GetMemberByUserInput{UserRef: 6}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if _, err := svc.GetMember(ctx, GetMemberInput{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestService_UpdateMember_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := newFakeMemberRepo()
	clk := &stubClock{now: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk, nil)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, CreateMemberInput{
		UserRef: 10,
		ProfileFields: ProfileFields{
			FirstName:      strPtr("Ana"),
			Country:        strPtr("Portugal"),
			EmployeeNumber: strPtr("E-10"),
			JobTitle:       strPtr("Engineer"),
		},
	})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	clk.now = clk.now.Add(time.Hour)

	updated, err := svc.UpdateMember(ctx, UpdateMemberInput{
		ID:            created.ID,
		ProfileFields: ProfileFields{JobTitle: strPtr("Staff Engineer")},
	})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}

	if updated.JobTitle != "Staff Engineer" {
		t.Fatalf("expected job title to change, got %q", updated.JobTitle)
	}
	if updated.Country != "Portugal" || updated.FirstName != "Ana" {
		t.Fatalf("expected untouched fields to stay, got %+v", updated)
	}
	if updated.EmployeeNumber == nil || *updated.EmployeeNumber != "E-10" {
		t.Fatalf("expected employee number to stay, got %+v", updated.EmployeeNumber)
	}
	if updated.Status != StatusActive {
		t.Fatalf("expected status to stay ACTIVE, got %s", updated.Status)
	}
	if !updated.UpdatedAt.Equal(clk.now) || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected timestamps: created %v updated %v", updated.CreatedAt, updated.UpdatedAt)
	}
}

func TestService_UpdateMember_EmployeeNumber(t *testing.T) {
	t.Parallel()

	repo := newFakeMemberRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	first, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 1, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-1")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 2, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-2")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: first.ID, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-1")}}); err != nil {
		t.Fatalf("updating to own employee number must not conflict, got %v", err)
	}

	_, err = svc.UpdateMember(ctx, UpdateMemberInput{ID: second.ID, ProfileFields: ProfileFields{EmployeeNumber: strPtr("E-1")}})
	if !errors.Is(err, ErrEmployeeNumberTaken) {
		t.Fatalf("expected ErrEmployeeNumberTaken, got %v", err)
	}

	cleared, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: second.ID, ProfileFields: ProfileFields{EmployeeNumber: strPtr("  ")}})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if cleared.EmployeeNumber != nil {
		t.Fatalf("expected blank employee number to clear the value, got %q", *cleared.EmployeeNumber)
	}
}

func TestService_UpdateMember_Status(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 3})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	for _, next := range []Status{StatusTerminated, StatusActive, StatusOnLeave} {
		next := next
		updated, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: created.ID, Status: &next})
		if err != nil {
			t.Fatalf("transition to %s returned error: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected status %s, got %s", next, updated.Status)
		}
	}

	invalid := Status("RETIRED")
	if _, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: created.ID, Status: &invalid}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: 404}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestService_UpdateMember_ClockSkewKeepsOrdering(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeMemberRepo(), clk, nil)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 3})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	clk.now = clk.now.Add(-time.Minute)
	updated, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: created.ID, ProfileFields: ProfileFields{City: strPtr("Porto")}})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updated_at must not precede created_at")
	}
}

func TestService_DeleteMember(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 9})
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	if err := svc.DeleteMember(ctx, DeleteMemberInput{ID: created.ID}); err != nil {
		t.Fatalf("DeleteMember returned error: %v", err)
	}
	if _, err := svc.GetMember(ctx, GetMemberInput{ID: created.ID}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound after delete, got %v", err)
	}
	if err := svc.DeleteMember(ctx, DeleteMemberInput{ID: created.ID}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound on second delete, got %v", err)
	}

	if _, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: 9}); err != nil {
		t.Fatalf("user should be bindable again after hard delete, got %v", err)
	}
}

func TestService_ListAndSearch(t *testing.T) {
	t.Parallel()

	repo := newFakeMemberRepo()
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	seed := []struct {
		user  int64
		first string
		last  string
	}{
		{1, "Ana", "Silva"},
		{2, "Bruno", "Costa"},
		{3, "Mariana", "Alves"},
		{4, "Carlos", "Banana"},
	}
	for _, s := range seed {
		if _, err := svc.CreateMember(ctx, CreateMemberInput{
			UserRef:       s.user,
			ProfileFields: ProfileFields{FirstName: strPtr(s.first), LastName: strPtr(s.last)},
		}); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	inactive := StatusInactive
	bruno, err := svc.GetMemberByUser(ctx, GetMemberByUserInput{UserRef: 2})
	if err != nil {
		t.Fatalf("GetMemberByUser returned error: %v", err)
	}
	if _, err := svc.UpdateMember(ctx, UpdateMemberInput{ID: bruno.ID, Status: &inactive}); err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}

	page := PageRequest{Page: 0, Size: 10}
	all, err := svc.ListActiveMembers(ctx, ListMembersInput{PageRequest: page})
	if err != nil {
		t.Fatalf("ListActiveMembers returned error: %v", err)
	}
	if all.Total != 3 || len(all.Members) != 3 {
		t.Fatalf("expected 3 active members, got total=%d len=%d", all.Total, len(all.Members))
	}
	if all.Members[0].LastName != "Alves" {
		t.Fatalf("expected ordering by last name, got %s first", all.Members[0].LastName)
	}

	for _, blank := range []string{"", "   "} {
		res, err := svc.SearchMembers(ctx, SearchMembersInput{Term: blank, PageRequest: page})
		if err != nil {
			t.Fatalf("SearchMembers returned error: %v", err)
		}
		if res.Total != all.Total || len(res.Members) != len(all.Members) {
			t.Fatalf("blank search must equal list, got %d vs %d", res.Total, all.Total)
		}
		for i := range res.Members {
			if res.Members[i].ID != all.Members[i].ID {
				t.Fatalf("blank search order differs at %d", i)
			}
		}
	}

	res, err := svc.SearchMembers(ctx, SearchMembersInput{Term: "ana", PageRequest: page})
	if err != nil {
		t.Fatalf("SearchMembers returned error: %v", err)
	}
	// Ana (first), Mariana (first), Banana (last)
	if res.Total != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", res.Total)
	}

	res, err = svc.SearchMembers(ctx, SearchMembersInput{Term: "COSTA", PageRequest: page})
	if err != nil {
		t.Fatalf("SearchMembers returned error: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("inactive members must not be returned, got %d", res.Total)
	}
}

func TestService_ListActiveMembers_Pagination(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeMemberRepo(), &stubClock{now: time.Now().UTC()}, nil)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		if _, err := svc.CreateMember(ctx, CreateMemberInput{UserRef: i}); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	res, err := svc.ListActiveMembers(ctx, ListMembersInput{PageRequest: PageRequest{Page: 1, Size: 2}})
	if err != nil {
		t.Fatalf("ListActiveMembers returned error: %v", err)
	}
	if len(res.Members) != 2 || res.Total != 5 || res.TotalPages() != 3 {
		t.Fatalf("unexpected page: len=%d total=%d pages=%d", len(res.Members), res.Total, res.TotalPages())
	}

	defaults, err := svc.ListActiveMembers(ctx, ListMembersInput{})
	if err != nil {
		t.Fatalf("ListActiveMembers returned error: %v", err)
	}
	if defaults.Size != defaultPageSize {
		t.Fatalf("expected default page size %d, got %d", defaultPageSize, defaults.Size)
	}

	if _, err := svc.ListActiveMembers(ctx, ListMembersInput{PageRequest: PageRequest{Size: maxPageSize + 1}}); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if _, err := svc.ListActiveMembers(ctx, ListMembersInput{PageRequest: PageRequest{Page: -1}}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := svc.ListActiveMembers(ctx, ListMembersInput{PageRequest: PageRequest{Sort: Sort{Field: "salary"}}}); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
	if _, err := svc.SearchMembers(ctx, SearchMembersInput{Term: "a", PageRequest: PageRequest{Page: math.MaxInt}}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage for overflowing page, got %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	lastPage := math.MaxInt / maxPageSize
	overflowPage := math.MaxInt/defaultPageSize + 1

	tests := []struct {
		name       string
		page       PageRequest
		wantSize   int
		wantOffset int
		wantErr    error
	}{
		{name: "defaults", page: PageRequest{}, wantSize: defaultPageSize},
		{name: "offset", page: PageRequest{Page: 3, Size: 10}, wantSize: 10, wantOffset: 30},
		{name: "largest page", page: PageRequest{Page: lastPage, Size: maxPageSize}, wantSize: maxPageSize, wantOffset: lastPage * maxPageSize},
		{name: "overflowing page", page: PageRequest{Page: overflowPage}, wantErr: ErrInvalidPage},
		{name: "negative page", page: PageRequest{Page: -1}, wantErr: ErrInvalidPage},
		{name: "size too large", page: PageRequest{Size: maxPageSize + 1}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, offset, err := normalizePage(tt.page)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizePage returned error: %v", err)
			}
			if size != tt.wantSize || offset != tt.wantOffset {
				t.Fatalf("expected size=%d offset=%d, got size=%d offset=%d", tt.wantSize, tt.wantOffset, size, offset)
			}
		})
	}
}
