package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/services"
)

func bookingFixture(t *testing.T) (*services.BookingService, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// each sqlite :memory: connection is its own database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
	  INSERT INTO users(id,name,email) VALUES ('u-client','Thomas Keller','thomas@example.test');
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
	  INSERT INTO services(id,title,description,category,price,currency,
	    provider_id,provider_name,provider_verified,provider_premium,
	    rating,review_count,location,status)
	  VALUES('svc-clean','Deep Clean','Thorough cleaning','Cleaning',80,'CHF',
	    'u-maria','Maria Silva',1,1,4.8,127,'Zurich','APPROVED')
	`); err != nil {
		t.Fatal(err)
	}

	return services.NewBookingService(
		repos.NewBookingRepo(db),
		repos.NewServiceRepo(db),
		repos.NewUserRepo(db),
	), db
}

func today() string     { return time.Now().Format("2006-01-02") }
func inDays(n int) string {
	return time.Now().AddDate(0, 0, n).Format("2006-01-02")
}

func TestCreateBookingSnapshotsAndStartsPending(t *testing.T) {
	svc, db := bookingFixture(t)

	b, err := svc.Create("svc-clean", "u-client", inDays(3), "14:00", "please ring twice")
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != domain.BookingPending {
		t.Fatalf("want pending, got %s", b.Status)
	}
	if b.ServiceTitle != "Deep Clean" || b.ProviderName != "Maria Silva" || b.ClientName != "Thomas Keller" {
		t.Fatalf("snapshot fields wrong: %+v", b)
	}
	if b.Price != 80 || b.Currency != "CHF" {
		t.Fatalf("price snapshot wrong: %+v", b)
	}

	// snapshots never track later edits to the source
	if _, err := db.Exec(`UPDATE services SET title='Renamed' WHERE id='svc-clean'`); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ServiceTitle != "Deep Clean" {
		t.Fatalf("snapshot was backfilled: %q", got.ServiceTitle)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, _ := bookingFixture(t)

	_, err := svc.Create("svc-clean", "u-client", inDays(-1), "14:00", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for past date, got %v", err)
	}

	// today is still bookable
	if _, err := svc.Create("svc-clean", "u-client", today(), "14:00", ""); err != nil {
		t.Fatalf("today should be valid: %v", err)
	}
}

func TestCreateBookingRejectsBadTime(t *testing.T) {
	svc, _ := bookingFixture(t)
	for _, bad := range []string{"25:00", "9:5", "noon", ""} {
		if _, err := svc.Create("svc-clean", "u-client", inDays(1), bad, ""); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("time %q: want ErrValidation, got %v", bad, err)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	svc, _ := bookingFixture(t)

	b, err := svc.Create("svc-clean", "u-client", inDays(2), "10:00", "")
	if err != nil {
		t.Fatal(err)
	}

	b, err = svc.UpdateStatus(b.ID, domain.BookingConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	b, err = svc.UpdateStatus(b.ID, domain.BookingCompleted)
	if err != nil {
		t.Fatal(err)
	}

	// terminal states admit no transitions
	if _, err := svc.UpdateStatus(b.ID, domain.BookingConfirmed); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed -> confirmed must fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(b.ID, domain.BookingCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed -> cancelled must fail, got %v", err)
	}
}

func TestBookingPendingCannotComplete(t *testing.T) {
	svc, _ := bookingFixture(t)

	b, err := svc.Create("svc-clean", "u-client", inDays(2), "10:00", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(b.ID, domain.BookingCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending -> completed must fail, got %v", err)
	}
}

func TestBookingListPartition(t *testing.T) {
	svc, _ := bookingFixture(t)

	early, err := svc.Create("svc-clean", "u-client", inDays(1), "09:00", "")
	if err != nil {
		t.Fatal(err)
	}
	late, err := svc.Create("svc-clean", "u-client", inDays(5), "09:00", "")
	if err != nil {
		t.Fatal(err)
	}
	done, err := svc.Create("svc-clean", "u-client", inDays(2), "09:00", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(done.ID, domain.BookingConfirmed); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(done.ID, domain.BookingCompleted); err != nil {
		t.Fatal(err)
	}

	out, err := svc.List("u-client", "client")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Upcoming) != 2 || len(out.Past) != 1 {
		t.Fatalf("partition wrong: %d upcoming, %d past", len(out.Upcoming), len(out.Past))
	}
	// soonest first
	if out.Upcoming[0].ID != early.ID || out.Upcoming[1].ID != late.ID {
		t.Fatalf("upcoming not date ascending")
	}
	if out.Past[0].ID != done.ID {
		t.Fatalf("past missing completed booking")
	}

	// provider sees the same bookings from the other side
	prov, err := svc.List("u-maria", "provider")
	if err != nil {
		t.Fatal(err)
	}
	if len(prov.Upcoming) != 2 {
		t.Fatalf("provider view wrong: %+v", prov)
	}

	if _, err := svc.List("u-client", "owner"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad role must fail validation, got %v", err)
	}
}

func TestBookingUnknownServiceIsNotFound(t *testing.T) {
	svc, _ := bookingFixture(t)
	if _, err := svc.Create("nope", "u-client", inDays(1), "10:00", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
