package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseStop(t *testing.T) {
	stop, err := ParseStop(3, "Main St 1", "VIP", "47.222", "39.715", "09:00", "18:00", "13:00", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stop.ID != 3 {
		t.Errorf("ID = %d, want 3", stop.ID)
	}
	if stop.Tier != TierVIP {
		t.Errorf("Tier = %q, want VIP", stop.Tier)
	}
	if stop.Location.Lat != 47.222 || stop.Location.Lon != 39.715 {
		t.Errorf("Location = %+v", stop.Location)
	}
	if got := stop.WorkWindow.String(); got != "09:00-18:00" {
		t.Errorf("WorkWindow = %q", got)
	}
	if got := stop.LunchWindow.String(); got != "13:00-14:00" {
		t.Errorf("LunchWindow = %q", got)
	}
}

func TestParseStopInvalidCoordinate(t *testing.T) {
	_, err := ParseStop(0, "Main St 1", "VIP", "not-a-number", "39.7", "09:00", "18:00", "13:00", "14:00")
	if err == nil {
		t.Fatal("expected error for non-numeric latitude")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Field != "lat" {
		t.Errorf("Field = %q, want lat", verr.Field)
	}
}

func TestParseStopInvalidTimeWindow(t *testing.T) {
	_, err := ParseStop(0, "Main St 1", "Standard", "47.2", "39.7", "9am", "18:00", "13:00", "14:00")
	if err == nil {
		t.Fatal("expected error for unparseable work start")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
}

func TestParseTierNormalization(t *testing.T) {
	cases := map[string]Tier{
		"VIP":      TierVIP,
		"vip":      TierVIP,
		" VIP ":    TierVIP,
		"Standard": TierStandard,
		"Standart": TierStandard, // legacy misspelling
		"gold":     TierStandard,
		"":         TierStandard,
	}

	for raw, want := range cases {
		if got := ParseTier(raw); got != want {
			t.Errorf("ParseTier(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestVisitDuration(t *testing.T) {
	vip := Stop{Tier: TierVIP}
	if vip.VisitDuration() != 45*time.Minute {
		t.Errorf("VIP duration = %v, want 45m", vip.VisitDuration())
	}

	standard := Stop{Tier: TierStandard}
	if standard.VisitDuration() != 30*time.Minute {
		t.Errorf("Standard duration = %v, want 30m", standard.VisitDuration())
	}
}

func TestTimeOfDayParseAndFormat(t *testing.T) {
	tod, err := ParseTimeOfDay("07:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if int(tod) != 7*60+45 {
		t.Errorf("minutes = %d, want 465", int(tod))
	}
	if tod.String() != "07:45" {
		t.Errorf("String = %q", tod.String())
	}

	for _, bad := range []string{"", "25:00", "12:60", "noon", "12"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("ParseTimeOfDay(%q) expected error", bad)
		}
	}
}

func TestTimeWindowContains(t *testing.T) {
	w, err := ParseTimeWindow("13:00", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for tod, want := range map[string]bool{
		"12:59": false,
		"13:00": true,
		"13:30": true,
		"14:00": true,
		"14:01": false,
	} {
		v, err := ParseTimeOfDay(tod)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := w.Contains(v); got != want {
			t.Errorf("Contains(%s) = %v, want %v", tod, got, want)
		}
	}
}

func TestTimeOfDayAt(t *testing.T) {
	ref := time.Date(2026, 3, 15, 10, 20, 30, 0, time.UTC)
	tod, _ := ParseTimeOfDay("14:00")

	got := tod.At(ref)
	want := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
}

func TestPathBounds(t *testing.T) {
	path := []Coordinates{
		{Lat: 47.2, Lon: 39.7},
		{Lat: 47.3, Lon: 39.6},
		{Lat: 47.1, Lon: 39.9},
	}

	box := PathBounds(path, 0.1)
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	if !near(box.MinLat, 47.0) || !near(box.MaxLat, 47.4) {
		t.Errorf("lat bounds = %f..%f", box.MinLat, box.MaxLat)
	}
	if !near(box.MinLon, 39.5) || !near(box.MaxLon, 40.0) {
		t.Errorf("lon bounds = %f..%f", box.MinLon, box.MaxLon)
	}
}
