package app

import (
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetSummary() != nil {
		t.Error("Summary should be nil before the first load")
	}
	if s.Loading.Initial != true {
		t.Error("Initial loading should be true")
	}
	if s.GetYearBase() != 2011 {
		t.Errorf("YearBase = %d, want 2011", s.GetYearBase())
	}
	if _, preset := s.GetRange(); preset != models.RangeAllTime {
		t.Errorf("Preset = %v, want All Time", preset)
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("summary", true)
	if !s.Loading.Summary {
		t.Error("Summary loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("summary", false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	resources := s.GetLoadingResources()
	if len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("reload", true)
	resources = s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "reload" {
		t.Errorf("GetLoadingResources should contain reload, got %v", resources)
	}
}

func TestState_Summary(t *testing.T) {
	s := NewState()
	rng := models.DateRange{
		Start: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2011, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	before := time.Now()
	s.SetSummary(models.Summary{Range: rng, GrandTotal: 42, Rows: 3}, models.RangeCustom)

	got := s.GetSummary()
	if got == nil {
		t.Fatal("GetSummary returned nil")
	}
	if got.GrandTotal != 42 {
		t.Errorf("GrandTotal = %d, want 42", got.GrandTotal)
	}

	gotRange, preset := s.GetRange()
	if gotRange != rng {
		t.Errorf("Range = %v, want %v", gotRange, rng)
	}
	if preset != models.RangeCustom {
		t.Errorf("Preset = %v, want Custom", preset)
	}
	if s.GetLastUpdated().Before(before) {
		t.Error("LastUpdated should be set")
	}
}

func TestState_Dataset(t *testing.T) {
	s := NewState()
	s.SetDataset(DatasetInfo{Source: "df_cleaned.csv", Rows: 17379})

	info := s.GetDataset()
	if info.Source != "df_cleaned.csv" || info.Rows != 17379 {
		t.Errorf("GetDataset() = %+v", info)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState()
	for range maxNotifications + 5 {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("notifications = %d, want %d", got, maxNotifications)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should empty the list")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any update")
	}

	s.SetSummary(models.Summary{}, models.RangeAllTime)
	time.Sleep(time.Millisecond)
	if s.TimeSinceUpdate() == 0 {
		t.Error("TimeSinceUpdate should be > 0")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
