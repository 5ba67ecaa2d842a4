package sqlite

import (
	"database/sql"

	"github.com/bloomwithanjli/checkout/internal/application/journal"
)

type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Save(entry journal.Entry) error {
	_, err := r.db.Exec(
		`INSERT INTO journal_entries
		 (id, kind, order_id, payment_id, amount, email, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Kind,
		entry.OrderID,
		entry.PaymentID,
		entry.Amount,
		entry.Email,
		entry.Detail,
		entry.CreatedAt,
	)
	return err
}

func (r *JournalRepository) FindByPaymentID(paymentID string) ([]journal.Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, kind, order_id, payment_id, amount, email, detail, created_at
		 FROM journal_entries
		 WHERE payment_id = ?
		 ORDER BY created_at`,
		paymentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []journal.Entry

	for rows.Next() {
		var entry journal.Entry

		if err := rows.Scan(
			&entry.ID,
			&entry.Kind,
			&entry.OrderID,
			&entry.PaymentID,
			&entry.Amount,
			&entry.Email,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
