package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// the pragma has to ride the DSN so every pooled connection enforces
	// foreign keys, not just the one that ran the schema
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed taxonomy and the demo profile if the DB is empty (idempotent;
	// safe to run on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Categories (count is derived at read time, never stored)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  icon TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Users (provider and/or client profiles)
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  verified INTEGER NOT NULL DEFAULT 0,
  premium INTEGER NOT NULL DEFAULT 0,
  premium_expiry_date TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  skills_json TEXT NOT NULL DEFAULT '[]',
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Service listings (provider fields denormalized for catalog cards)
CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  currency TEXT NOT NULL,
  provider_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  provider_name TEXT NOT NULL,
  provider_verified INTEGER NOT NULL DEFAULT 0,
  provider_premium INTEGER NOT NULL DEFAULT 0,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_services_category ON services(category);
CREATE INDEX IF NOT EXISTS idx_services_provider ON services(provider_id);
CREATE INDEX IF NOT EXISTS idx_services_status   ON services(status);
CREATE INDEX IF NOT EXISTS idx_services_title    ON services(LOWER(title));

-- Bookings (service_title/provider_name/client_name are creation-time snapshots)
CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  service_id TEXT NOT NULL REFERENCES services(id),
  service_title TEXT NOT NULL,
  provider_id TEXT NOT NULL,
  provider_name TEXT NOT NULL,
  client_id TEXT NOT NULL,
  client_name TEXT NOT NULL,
  date TEXT NOT NULL,
  time TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','confirmed','completed','cancelled')),
  location TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  currency TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bookings_client   ON bookings(client_id);
CREATE INDEX IF NOT EXISTS idx_bookings_provider ON bookings(provider_id);
CREATE INDEX IF NOT EXISTS idx_bookings_date     ON bookings(date);

-- Service requests
CREATE TABLE IF NOT EXISTS requests(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL,
  budget NUMERIC NOT NULL CHECK (budget >= 0),
  currency TEXT NOT NULL,
  location TEXT NOT NULL,
  preferred_date TEXT NOT NULL DEFAULT '',
  preferred_time TEXT NOT NULL DEFAULT '',
  client_id TEXT NOT NULL,
  client_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open','in_progress','closed')),
  accepted_bid_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_requests_client ON requests(client_id);
CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);

-- Bids live and die with their request
CREATE TABLE IF NOT EXISTS bids(
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL REFERENCES requests(id) ON DELETE CASCADE,
  provider_id TEXT NOT NULL,
  provider_name TEXT NOT NULL,
  provider_rating NUMERIC NOT NULL DEFAULT 0,
  provider_verified INTEGER NOT NULL DEFAULT 0,
  provider_premium INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL CHECK (price >= 0),
  currency TEXT NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  estimated_duration TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bids_request ON bids(request_id);

-- Per-user privacy toggles (whole-row replace on save)
CREATE TABLE IF NOT EXISTS privacy_settings(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  show_phone INTEGER NOT NULL DEFAULT 1,
  show_email INTEGER NOT NULL DEFAULT 1,
  show_location INTEGER NOT NULL DEFAULT 1,
  allow_messages INTEGER NOT NULL DEFAULT 1,
  allow_notifications INTEGER NOT NULL DEFAULT 1,
  data_sharing INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting category taxonomy and demo profile")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,icon) VALUES
	  ('cleaning','Cleaning','cleaning-services'),
	  ('repairs','Repairs','build'),
	  ('gardening','Gardening','yard'),
	  ('painting','Painting','format-paint'),
	  ('electrician','Electrician','electrical-services'),
	  ('plumber','Plumber','plumbing'),
	  ('moving','Moving','local-shipping'),
	  ('beauty','Beauty','face'),
	  ('photography','Photography','camera-alt'),
	  ('lessons','Lessons','school'),
	  ('it-tech','IT & Tech','computer'),
	  ('other','Other','more-horiz')`)

	tx.MustExec(`INSERT INTO users(id,name,email,phone,location,verified,premium,premium_expiry_date,bio,skills_json,rating,review_count) VALUES
	  ('u-maria','Maria Silva','maria.silva@email.com','+41 79 123 4567','Zurich, Switzerland',1,1,date('now','+365 days'),
	   'Professional cleaner with 10 years of experience. Dedicated to leaving your home spotless!',
	   '["Residential Cleaning","Commercial Cleaning","Organization"]',4.8,127)`)

	tx.MustExec(`INSERT INTO privacy_settings(user_id) VALUES ('u-maria')`)

	return tx.Commit()
}
