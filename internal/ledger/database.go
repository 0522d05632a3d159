package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/donflow/donflow/internal/model"
)

const (
	transactionBucket = "transactions"
	fingerprintBucket = "fingerprints"
	ruleBucket        = "merchant_rules"
	categoryBucket    = "categories"
)

// ruleKeySep joins pattern and rule ID in the rule bucket key, so all rules
// sharing a pattern sit under one key prefix and band scans never touch the
// rest of the table.
const ruleKeySep = "\x00"

// DB defines the persistence surface for the ingestion pipeline. It also
// satisfies classify.RuleStore and classify.Categories.
type DB interface {
	// SaveTransaction persists a transaction and indexes its dedup
	// fingerprint in the same write.
	SaveTransaction(tx *model.Transaction) error

	// TransactionExists reports whether a transaction with this dedup
	// fingerprint was already persisted.
	TransactionExists(fingerprint string) (bool, error)

	// ListTransactions returns all transactions.
	ListTransactions() ([]*model.Transaction, error)

	// SaveCategory persists a category, assigning the next stable ID when
	// the category has none.
	SaveCategory(cat *model.Category) error

	// ListCategories returns all categories in ID order.
	ListCategories() ([]*model.Category, error)

	// CategoryByID returns the category with the given ID, or nil.
	CategoryByID(id int64) (*model.Category, error)

	// CategoryByName returns the first category with the given name, or nil.
	CategoryByName(name string) (*model.Category, error)

	// RulesByPattern returns the rules whose pattern equals the given
	// (trimmed) pattern, in stable key order.
	RulesByPattern(pattern string) ([]*model.MerchantRule, error)

	// AllRules returns every learned rule in stable key order.
	AllRules() ([]*model.MerchantRule, error)

	// PutRule upserts a rule atomically under its (pattern, ID) key.
	PutRule(rule *model.MerchantRule) error

	// Close closes the database.
	Close() error
}

// BoltDB implements DB on an embedded bbolt file.
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (or creates) the database file and ensures all buckets
// exist.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{transactionBucket, fingerprintBucket, ruleBucket, categoryBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveTransaction persists a transaction and its fingerprint index entry in
// one write transaction.
func (b *BoltDB) SaveTransaction(t *model.Transaction) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling transaction: %w", err)
		}
		if err := tx.Bucket([]byte(transactionBucket)).Put([]byte(t.ID), data); err != nil {
			return err
		}
		if t.Fingerprint != "" {
			return tx.Bucket([]byte(fingerprintBucket)).Put([]byte(t.Fingerprint), []byte(t.ID))
		}
		return nil
	})
}

// TransactionExists checks the fingerprint index.
func (b *BoltDB) TransactionExists(fingerprint string) (bool, error) {
	var exists bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket([]byte(fingerprintBucket)).Get([]byte(fingerprint)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListTransactions returns all transactions.
func (b *BoltDB) ListTransactions() ([]*model.Transaction, error) {
	transactions := make([]*model.Transaction, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(transactionBucket)).ForEach(func(k, v []byte) error {
			var t model.Transaction
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("unmarshaling transaction: %w", err)
			}
			transactions = append(transactions, &t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveCategory persists a category. A zero ID takes the bucket's next
// sequence number, which stays stable for the category's lifetime.
func (b *BoltDB) SaveCategory(cat *model.Category) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(categoryBucket))
		if cat.ID == 0 {
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("assigning category id: %w", err)
			}
			cat.ID = int64(seq)
		}
		data, err := json.Marshal(cat)
		if err != nil {
			return fmt.Errorf("marshaling category: %w", err)
		}
		return bucket.Put(itob(cat.ID), data)
	})
}

// ListCategories returns all categories in ID order.
func (b *BoltDB) ListCategories() ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(categoryBucket)).ForEach(func(k, v []byte) error {
			var cat model.Category
			if err := json.Unmarshal(v, &cat); err != nil {
				return fmt.Errorf("unmarshaling category: %w", err)
			}
			categories = append(categories, &cat)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryByID returns the category with the given ID, or nil when absent.
func (b *BoltDB) CategoryByID(id int64) (*model.Category, error) {
	var cat *model.Category
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(categoryBucket)).Get(itob(id))
		if data == nil {
			return nil
		}
		cat = &model.Category{}
		return json.Unmarshal(data, cat)
	})
	if err != nil {
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	return cat, nil
}

// CategoryByName returns the first category with the given name, or nil.
func (b *BoltDB) CategoryByName(name string) (*model.Category, error) {
	var found *model.Category
	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(categoryBucket)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var cat model.Category
			if err := json.Unmarshal(v, &cat); err != nil {
				return fmt.Errorf("unmarshaling category: %w", err)
			}
			if cat.Name == name {
				found = &cat
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// RulesByPattern scans the key prefix shared by all rules with this pattern.
func (b *BoltDB) RulesByPattern(pattern string) ([]*model.MerchantRule, error) {
	rules := make([]*model.MerchantRule, 0)
	prefix := []byte(pattern + ruleKeySep)
	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(ruleBucket)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rule model.MerchantRule
			if err := json.Unmarshal(v, &rule); err != nil {
				return fmt.Errorf("unmarshaling rule: %w", err)
			}
			rules = append(rules, &rule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// AllRules returns every learned rule in key order.
func (b *BoltDB) AllRules() ([]*model.MerchantRule, error) {
	rules := make([]*model.MerchantRule, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(ruleBucket)).ForEach(func(k, v []byte) error {
			var rule model.MerchantRule
			if err := json.Unmarshal(v, &rule); err != nil {
				return fmt.Errorf("unmarshaling rule: %w", err)
			}
			rules = append(rules, &rule)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// PutRule upserts a rule. The write is a single transaction per rule key;
// concurrent writers on the same key resolve last-writer-wins without
// corrupting the record.
func (b *BoltDB) PutRule(rule *model.MerchantRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rule)
		if err != nil {
			return fmt.Errorf("marshaling rule: %w", err)
		}
		key := []byte(rule.Pattern + ruleKeySep + rule.ID)
		return tx.Bucket([]byte(ruleBucket)).Put(key, data)
	})
}

// Close closes the database file.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
