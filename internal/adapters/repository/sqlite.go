package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
)

// SQLite holds a shared database handle for the SQLite-backed stores.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Listings returns the listing store backed by this database.
func (s *SQLite) Listings() ListingStore {
	return &sqliteListings{db: s.db}
}

// Profiles returns the profile store backed by this database.
func (s *SQLite) Profiles() ProfileStore {
	return &sqliteProfiles{db: s.db}
}

func (s *SQLite) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  operation TEXT NOT NULL,
  price REAL NOT NULL,
  currency TEXT NOT NULL DEFAULT '',
  total_area REAL,
  covered_area REAL,
  rooms INTEGER NOT NULL DEFAULT 0,
  accepts_financing INTEGER NOT NULL DEFAULT 0,
  professional_use INTEGER NOT NULL DEFAULT 0,
  pets_allowed INTEGER NOT NULL DEFAULT 0,
  has_parking INTEGER NOT NULL DEFAULT 0,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  age TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  neighborhood TEXT NOT NULL DEFAULT '',
  region TEXT NOT NULL DEFAULT '',
  published INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  categories_json TEXT NOT NULL DEFAULT '[]',
  operation TEXT NOT NULL DEFAULT '',
  price_min REAL,
  price_max REAL,
  neighborhoods_json TEXT NOT NULL DEFAULT '[]',
  rooms TEXT NOT NULL DEFAULT '',
  min_total_area REAL,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  age_labels_json TEXT NOT NULL DEFAULT '[]',
  needs_parking INTEGER NOT NULL DEFAULT 0,
  needs_financing INTEGER NOT NULL DEFAULT 0,
  needs_professional_use INTEGER NOT NULL DEFAULT 0,
  needs_pets INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_listings_visibility ON listings(published, available);
`
	_, err := s.db.Exec(schema)
	return err
}

const listingColumns = `id, title, category, operation, price, currency, total_area, covered_area,
rooms, accepts_financing, professional_use, pets_allowed, has_parking, amenities_json, age,
address, neighborhood, region, published, available`

type sqliteListings struct {
	db *sql.DB
}

func (s *sqliteListings) Put(ctx context.Context, l model.Listing) error {
	if l.ID == "" {
		return fmt.Errorf("put listing: %w", ErrEmptyID)
	}
	amenities, err := json.Marshal(l.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO listings (`+listingColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		l.ID, l.Title, string(l.Category), string(l.Operation), l.Price, l.Currency,
		nullFloat(l.TotalArea), nullFloat(l.CoveredArea),
		l.Rooms, l.AcceptsFinancing, l.ProfessionalUse, l.PetsAllowed, l.HasParking,
		string(amenities), l.Age, l.Address, l.Neighborhood, l.Region,
		l.Published, l.Available,
	)
	if err != nil {
		return fmt.Errorf("put listing %q: %w", l.ID, err)
	}
	return nil
}

func (s *sqliteListings) Get(ctx context.Context, id string) (model.Listing, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("get listing %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("get listing %q: %w", id, err)
	}
	return l, nil
}

func (s *sqliteListings) List(ctx context.Context) ([]model.Listing, error) {
	return s.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY rowid`)
}

func (s *sqliteListings) ListPublic(ctx context.Context) ([]model.Listing, error) {
	return s.query(ctx, `SELECT `+listingColumns+` FROM listings WHERE published = 1 AND available = 1 ORDER BY rowid`)
}

func (s *sqliteListings) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *sqliteListings) query(ctx context.Context, q string) ([]model.Listing, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("list listings: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(r rowScanner) (model.Listing, error) {
	var (
		l         model.Listing
		category  string
		operation string
		totalArea sql.NullFloat64
		covered   sql.NullFloat64
		amenities string
	)
	if err := r.Scan(
		&l.ID, &l.Title, &category, &operation, &l.Price, &l.Currency,
		&totalArea, &covered,
		&l.Rooms, &l.AcceptsFinancing, &l.ProfessionalUse, &l.PetsAllowed, &l.HasParking,
		&amenities, &l.Age, &l.Address, &l.Neighborhood, &l.Region,
		&l.Published, &l.Available,
	); err != nil {
		return model.Listing{}, err
	}
	l.Category = model.Category(category)
	l.Operation = model.Operation(operation)
	l.TotalArea = floatPtr(totalArea)
	l.CoveredArea = floatPtr(covered)
	if err := json.Unmarshal([]byte(amenities), &l.Amenities); err != nil {
		return model.Listing{}, fmt.Errorf("unmarshal amenities: %w", err)
	}
	return l, nil
}

const profileColumns = `id, name, categories_json, operation, price_min, price_max,
neighborhoods_json, rooms, min_total_area, amenities_json, age_labels_json,
needs_parking, needs_financing, needs_professional_use, needs_pets`

type sqliteProfiles struct {
	db *sql.DB
}

func (s *sqliteProfiles) Put(ctx context.Context, p model.SearchProfile) error {
	if p.ID == "" {
		return fmt.Errorf("put profile: %w", ErrEmptyID)
	}
	categories, err := json.Marshal(p.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	neighborhoods, err := json.Marshal(p.Neighborhoods)
	if err != nil {
		return fmt.Errorf("marshal neighborhoods: %w", err)
	}
	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}
	ageLabels, err := json.Marshal(p.AgeLabels)
	if err != nil {
		return fmt.Errorf("marshal age labels: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO profiles (`+profileColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		p.ID, p.Name, string(categories), string(p.Operation),
		nullFloat(p.PriceMin), nullFloat(p.PriceMax),
		string(neighborhoods), p.Rooms, nullFloat(p.MinTotalArea),
		string(amenities), string(ageLabels),
		p.NeedsParking, p.NeedsFinancing, p.NeedsProfessionalUse, p.NeedsPets,
	)
	if err != nil {
		return fmt.Errorf("put profile %q: %w", p.ID, err)
	}
	return nil
}

func (s *sqliteProfiles) Get(ctx context.Context, id string) (model.SearchProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SearchProfile{}, fmt.Errorf("get profile %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.SearchProfile{}, fmt.Errorf("get profile %q: %w", id, err)
	}
	return p, nil
}

func (s *sqliteProfiles) List(ctx context.Context) ([]model.SearchProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []model.SearchProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

func (s *sqliteProfiles) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func scanProfile(r rowScanner) (model.SearchProfile, error) {
	var (
		p             model.SearchProfile
		categories    string
		operation     string
		priceMin      sql.NullFloat64
		priceMax      sql.NullFloat64
		neighborhoods string
		minArea       sql.NullFloat64
		amenities     string
		ageLabels     string
	)
	if err := r.Scan(
		&p.ID, &p.Name, &categories, &operation, &priceMin, &priceMax,
		&neighborhoods, &p.Rooms, &minArea, &amenities, &ageLabels,
		&p.NeedsParking, &p.NeedsFinancing, &p.NeedsProfessionalUse, &p.NeedsPets,
	); err != nil {
		return model.SearchProfile{}, err
	}
	p.Operation = model.Operation(operation)
	p.PriceMin = floatPtr(priceMin)
	p.PriceMax = floatPtr(priceMax)
	p.MinTotalArea = floatPtr(minArea)
	if err := json.Unmarshal([]byte(categories), &p.Categories); err != nil {
		return model.SearchProfile{}, fmt.Errorf("unmarshal categories: %w", err)
	}
	if err := json.Unmarshal([]byte(neighborhoods), &p.Neighborhoods); err != nil {
		return model.SearchProfile{}, fmt.Errorf("unmarshal neighborhoods: %w", err)
	}
	if err := json.Unmarshal([]byte(amenities), &p.Amenities); err != nil {
		return model.SearchProfile{}, fmt.Errorf("unmarshal amenities: %w", err)
	}
	if err := json.Unmarshal([]byte(ageLabels), &p.AgeLabels); err != nil {
		return model.SearchProfile{}, fmt.Errorf("unmarshal age labels: %w", err)
	}
	return p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
