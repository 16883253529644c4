package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"servio/internal/domain"
	"servio/internal/repos"
	"servio/internal/services"
)

func catalogDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// each sqlite :memory: connection is its own database
	db.SetMaxOpenConns(1)
	return db
}

func newCatalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	t.Helper()
	db := catalogDB(t)
	return services.NewCatalogService(
		repos.NewCategoryRepo(db),
		repos.NewServiceRepo(db),
		repos.NewUserRepo(db),
	), db
}

func insertService(t *testing.T, db *sqlx.DB, id, title, desc, category string, premium bool, rating float64) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO services(id,title,description,category,price,currency,
	    provider_id,provider_name,provider_verified,provider_premium,
	    rating,review_count,location,status)
	  VALUES(?,?,?,?,50,'CHF','u-maria','Maria Silva',1,?,?,10,'Zurich','APPROVED')
	`, id, title, desc, category, premium, rating)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSearchMatchesTitleDescriptionCategory(t *testing.T) {
	svc, db := newCatalog(t)
	insertService(t, db, "s1", "Deep Clean", "Thorough apartment service", "Cleaning", false, 4.2)
	insertService(t, db, "s2", "Wall painting", "We also clean up afterwards", "Painting", false, 4.0)
	insertService(t, db, "s3", "Garden care", "Hedges and lawns", "Gardening", false, 4.5)

	out, err := svc.Search("clean", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 matches, got %d", len(out))
	}
	for _, s := range out {
		if s.ID == "s3" {
			t.Fatalf("gardening service should not match %q", "clean")
		}
	}

	// category name matches too
	out, err = svc.Search("gardening", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "s3" {
		t.Fatalf("category match failed: %+v", out)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	svc, db := newCatalog(t)
	insertService(t, db, "s1", "Deep Clean", "d", "Cleaning", false, 4.2)
	insertService(t, db, "s2", "Garden care", "d", "Gardening", false, 4.5)

	out, err := svc.Search("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("empty query should match everything, got %d", len(out))
	}
}

func TestSearchCategoryFilterIsExact(t *testing.T) {
	svc, db := newCatalog(t)
	insertService(t, db, "s1", "Deep Clean", "d", "Cleaning", false, 4.2)
	insertService(t, db, "s2", "Office clean", "d", "Repairs", false, 4.0)

	out, err := svc.Search("clean", "Cleaning")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "s1" {
		t.Fatalf("category filter failed: %+v", out)
	}
}

func TestRankPremiumBeforeRating(t *testing.T) {
	// premium wins even with the lower rating
	list := []domain.Service{
		{Title: "Deep Clean", ProviderPremium: false, Rating: 4.2},
		{Title: "Cleaning Pro", ProviderPremium: true, Rating: 3.9},
	}
	services.Rank(list)
	if list[0].Title != "Cleaning Pro" || list[1].Title != "Deep Clean" {
		t.Fatalf("want premium first, got %q then %q", list[0].Title, list[1].Title)
	}
}

func TestRankStableOnTies(t *testing.T) {
	list := []domain.Service{
		{ID: "a", ProviderPremium: true, Rating: 4.0},
		{ID: "b", ProviderPremium: true, Rating: 4.0},
		{ID: "c", ProviderPremium: false, Rating: 4.0},
		{ID: "d", ProviderPremium: false, Rating: 4.0},
	}
	services.Rank(list)
	got := list[0].ID + list[1].ID + list[2].ID + list[3].ID
	if got != "abcd" {
		t.Fatalf("ties must keep input order, got %s", got)
	}
}

func TestRankRatingDescWithinGroup(t *testing.T) {
	list := []domain.Service{
		{ID: "low", ProviderPremium: false, Rating: 3.0},
		{ID: "high", ProviderPremium: false, Rating: 4.9},
		{ID: "mid", ProviderPremium: false, Rating: 4.0},
	}
	services.Rank(list)
	if list[0].ID != "high" || list[1].ID != "mid" || list[2].ID != "low" {
		t.Fatalf("bad rating order: %+v", list)
	}
}

func TestSearchDemotesLapsedPremium(t *testing.T) {
	svc, db := newCatalog(t)
	if _, err := db.Exec(`
	  INSERT INTO users(id,name,email,premium,premium_expiry_date)
	  VALUES ('u-lapsed','Jonas Frei','jonas@example.test',1,'2020-01-01')
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
	  INSERT INTO services(id,title,description,category,price,currency,
	    provider_id,provider_name,provider_verified,provider_premium,
	    rating,review_count,location,status)
	  VALUES('s-lapsed','Quick clean','d','Cleaning',50,'CHF','u-lapsed','Jonas Frei',0,1,3.0,4,'Bern','APPROVED')
	`); err != nil {
		t.Fatal(err)
	}
	insertService(t, db, "s-top", "Deep Clean", "d", "Cleaning", false, 5.0)

	out, err := svc.Search("clean", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 results, got %d", len(out))
	}
	// the lapsed subscription must not buy ranking priority anymore
	if out[0].ID != "s-top" {
		t.Fatalf("expired premium still ranked first: %+v", out)
	}
	for _, s := range out {
		if s.ID == "s-lapsed" && s.ProviderPremium {
			t.Fatalf("lapsed provider still flagged premium: %+v", s)
		}
	}
}

func TestCreateListingPendingUntilApproved(t *testing.T) {
	svc, _ := newCatalog(t)

	created, err := svc.CreateListing("u-maria", services.NewListing{
		Title:       "Deep Clean",
		Description: "Thorough apartment cleaning",
		Category:    "Cleaning",
		Price:       80,
		Currency:    "CHF",
		Location:    "Zurich",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != domain.ServicePending {
		t.Fatalf("new listing should be pending, got %s", created.Status)
	}

	out, err := svc.Search("deep", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("pending listing must not appear in the catalog, got %d", len(out))
	}

	if err := svc.Moderate(created.ID, true); err != nil {
		t.Fatal(err)
	}
	out, err = svc.Search("deep", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("approved listing missing from catalog")
	}
}

func TestCreateListingValidation(t *testing.T) {
	svc, _ := newCatalog(t)

	_, err := svc.CreateListing("u-maria", services.NewListing{
		Title: "", Description: "d", Category: "Cleaning", Price: 10, Currency: "CHF",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for missing title, got %v", err)
	}

	_, err = svc.CreateListing("u-maria", services.NewListing{
		Title: "t", Description: "d", Category: "NoSuchCategory", Price: 10, Currency: "CHF",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for unknown category, got %v", err)
	}

	_, err = svc.CreateListing("u-maria", services.NewListing{
		Title: "t", Description: "d", Category: "Cleaning", Price: -5, Currency: "CHF",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for negative price, got %v", err)
	}
}

func TestCategoryCountsDerived(t *testing.T) {
	svc, db := newCatalog(t)
	insertService(t, db, "s1", "Deep Clean", "d", "Cleaning", false, 4.2)
	insertService(t, db, "s2", "Move out clean", "d", "Cleaning", false, 4.0)

	cats, err := svc.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cats {
		want := 0
		if c.Name == "Cleaning" {
			want = 2
		}
		if c.Count != want {
			t.Fatalf("category %s: want count %d, got %d", c.Name, want, c.Count)
		}
	}
}
