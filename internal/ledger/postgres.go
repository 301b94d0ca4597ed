package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	yerrors "github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	_defaultPostgresHost    = "localhost"
	_defaultPostgresPort    = 5432
	_defaultPostgresSSLMode = "disable"
)

// PostgresOption defines the audit database connection. ConnString,
// when set, overrides the individual fields.
type PostgresOption struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	ConnString string
}

type entryRecord struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     string `gorm:"uniqueIndex"`
	Venue       string
	Symbol      string
	Side        string
	Quantity    string
	Status      string
	FilledPrice string
	RecordedAt  int64
	Payload     []byte
	Hash        string
	Reference   string
}

func (entryRecord) TableName() string {
	return "verification_entries"
}

// PostgresStore persists entries in the audit database.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore opens the audit database and migrates the entry
// table.
func NewPostgresStore(opt PostgresOption) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(opt.dsn()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, yerrors.Wrap(err, "open audit database")
	}
	if err := db.AutoMigrate(&entryRecord{}); err != nil {
		return nil, yerrors.Wrap(err, "migrate verification entries")
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, entry Entry) error {
	record := entryRecord{
		OrderID:     entry.OrderID,
		Venue:       entry.Venue,
		Symbol:      entry.Symbol,
		Side:        entry.Side,
		Quantity:    entry.Quantity,
		Status:      entry.Status,
		FilledPrice: entry.FilledPrice,
		RecordedAt:  entry.RecordedAt,
		Payload:     entry.Payload,
		Hash:        entry.Hash,
		Reference:   entry.Reference,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return yerrors.Wrap(ErrDuplicateEntry, entry.OrderID)
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, orderID string) (Entry, bool, error) {
	var record entryRecord
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return record.entry(), true, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	var records []entryRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		out = append(out, r.entry())
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r entryRecord) entry() Entry {
	return Entry{
		OrderID:     r.OrderID,
		Venue:       r.Venue,
		Symbol:      r.Symbol,
		Side:        r.Side,
		Quantity:    r.Quantity,
		Status:      r.Status,
		FilledPrice: r.FilledPrice,
		RecordedAt:  r.RecordedAt,
		Payload:     r.Payload,
		Hash:        r.Hash,
		Reference:   r.Reference,
	}
}

func (opt PostgresOption) dsn() string {
	if opt.ConnString != "" {
		return opt.ConnString
	}

	host := opt.Host
	if host == "" {
		host = _defaultPostgresHost
	}
	port := opt.Port
	if port == 0 {
		port = _defaultPostgresPort
	}
	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = _defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}
	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}
	query := url.Values{}
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()
	return u.String()
}
