package ledger

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/donflow/donflow/internal/model"
	"github.com/donflow/donflow/internal/notification"
	"github.com/donflow/donflow/internal/tabular"
)

type mockDB struct {
	transactions map[string]*model.Transaction
	fingerprints map[string]string
	categories   []*model.Category
	rules        []*model.MerchantRule
	nextCatID    int64
	nextRuleID   int
}

func newMockDB() *mockDB {
	return &mockDB{
		transactions: map[string]*model.Transaction{},
		fingerprints: map[string]string{},
	}
}

func (m *mockDB) SaveTransaction(tx *model.Transaction) error {
	m.transactions[tx.ID] = tx
	if tx.Fingerprint != "" {
		m.fingerprints[tx.Fingerprint] = tx.ID
	}
	return nil
}

func (m *mockDB) TransactionExists(fingerprint string) (bool, error) {
	_, ok := m.fingerprints[fingerprint]
	return ok, nil
}

func (m *mockDB) ListTransactions() ([]*model.Transaction, error) {
	out := make([]*model.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		out = append(out, tx)
	}
	return out, nil
}

func (m *mockDB) SaveCategory(cat *model.Category) error {
	if cat.ID == 0 {
		m.nextCatID++
		cat.ID = m.nextCatID
	}
	m.categories = append(m.categories, cat)
	return nil
}

func (m *mockDB) ListCategories() ([]*model.Category, error) {
	return m.categories, nil
}

func (m *mockDB) CategoryByID(id int64) (*model.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockDB) CategoryByName(name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockDB) RulesByPattern(pattern string) ([]*model.MerchantRule, error) {
	matched := []*model.MerchantRule{}
	for _, r := range m.rules {
		if r.Pattern == pattern {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (m *mockDB) AllRules() ([]*model.MerchantRule, error) {
	return m.rules, nil
}

func (m *mockDB) PutRule(rule *model.MerchantRule) error {
	if rule.ID == "" {
		m.nextRuleID++
		rule.ID = fmt.Sprintf("rule-%d", m.nextRuleID)
	}
	for _, existing := range m.rules {
		if existing == rule {
			return nil
		}
	}
	m.rules = append(m.rules, rule)
	return nil
}

func (m *mockDB) Close() error {
	return nil
}

type sequentialIDGenerator struct {
	n int
}

func (g *sequentialIDGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("tx-%d", g.n)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

var _ = Describe("Service", func() {
	var (
		db      *mockDB
		service *Service
	)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	BeforeEach(func() {
		db = newMockDB()
		service = NewServiceWithDeps(
			db,
			notification.NewParserWithClock(func() time.Time { return now }),
			&sequentialIDGenerator{},
			&fixedClock{now: now},
		)
		Expect(service.EnsureCategories()).To(Succeed())
	})

	Describe("EnsureCategories", func() {
		It("should seed the default set into an empty store", func() {
			Expect(db.categories).To(HaveLen(16))
			kitchen, err := db.CategoryByName("식비")
			Expect(err).ToNot(HaveOccurred())
			Expect(kitchen).ToNot(BeNil())
		})

		It("should be a no-op on a seeded store", func() {
			Expect(service.EnsureCategories()).To(Succeed())
			Expect(db.categories).To(HaveLen(16))
		})
	})

	Describe("ImportRows", func() {
		var (
			headers []string
			rows    []tabular.Row
			result  *ImportResult
			err     error
		)

		BeforeEach(func() {
			headers = []string{"거래일", "가맹점명", "이용금액"}
			rows = []tabular.Row{
				{"거래일": "24.02.18", "가맹점명": "스타벅스", "이용금액": "15,800원"},
			}
		})

		JustBeforeEach(func() {
			result, err = service.ImportRows(headers, rows, 1)
		})

		When("importing a recognizable statement", func() {
			It("should not error", func() {
				Expect(err).ToNot(HaveOccurred())
			})

			It("should import the row", func() {
				Expect(result.Imported).To(Equal(1))
				Expect(result.Skipped).To(BeZero())
				Expect(result.Duplicates).To(BeZero())
			})

			It("should persist a fully populated transaction", func() {
				Expect(result.Transactions).To(HaveLen(1))
				tx := result.Transactions[0]
				Expect(tx.ID).To(Equal("tx-1"))
				Expect(tx.Amount).To(Equal(int64(15800)))
				Expect(tx.MerchantName).To(Equal("스타벅스"))
				Expect(tx.Type).To(Equal(model.TypeExpense))
				Expect(tx.SourceTag).To(Equal(SourceCSV))
				Expect(tx.Date).To(Equal(time.Date(2024, 2, 18, 0, 0, 0, 0, time.Local)))
				Expect(tx.CreatedAt).To(Equal(now))
			})

			It("should categorize through the keyword table", func() {
				cafe, lookupErr := db.CategoryByName("카페")
				Expect(lookupErr).ToNot(HaveOccurred())
				Expect(result.Transactions[0].CategoryID).To(Equal(cafe.ID))
			})
		})

		When("the same row appears twice in one batch", func() {
			BeforeEach(func() {
				rows = append(rows, tabular.Row{
					"거래일": "24.02.18", "가맹점명": "스타벅스", "이용금액": "15,800원",
				})
			})

			It("should import once and count the duplicate", func() {
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Imported).To(Equal(1))
				Expect(result.Duplicates).To(Equal(1))
			})
		})

		When("the statement was already imported", func() {
			It("should import nothing the second time", func() {
				again, err2 := service.ImportRows(headers, rows, 1)
				Expect(err2).ToNot(HaveOccurred())
				Expect(again.Imported).To(BeZero())
				Expect(again.Duplicates).To(Equal(1))
				Expect(db.transactions).To(HaveLen(1))
			})
		})

		When("a row cannot be converted", func() {
			BeforeEach(func() {
				rows = append(rows, tabular.Row{
					"거래일": "24.02.19", "가맹점명": "쿠팡", "이용금액": "무료",
				})
			})

			It("should skip the row and import the rest", func() {
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Imported).To(Equal(1))
				Expect(result.Skipped).To(Equal(1))
			})
		})

		When("the headers match but every row is unconvertible", func() {
			BeforeEach(func() {
				headers = []string{"거래일", "이용금액"}
				rows = []tabular.Row{
					{"거래일": "2024-02-18", "이용금액": "무료"},
					{"거래일": "2024-02-19", "이용금액": "무료"},
				}
			})

			It("should surface the unrecognized-format error, not an empty import", func() {
				Expect(result).To(BeNil())
				var unrecognized *tabular.UnrecognizedFormatError
				Expect(err).To(BeAssignableToTypeOf(unrecognized))
				Expect(err.(*tabular.UnrecognizedFormatError).Headers).To(Equal(headers))
			})
		})

		When("no column mapping can be inferred", func() {
			BeforeEach(func() {
				headers = []string{"col_a", "col_b"}
				rows = []tabular.Row{
					{"col_a": "hello", "col_b": "world"},
				}
			})

			It("should return the unrecognized-format error", func() {
				Expect(result).To(BeNil())
				var unrecognized *tabular.UnrecognizedFormatError
				Expect(err).To(BeAssignableToTypeOf(unrecognized))
				Expect(err.(*tabular.UnrecognizedFormatError).Headers).To(Equal(headers))
			})
		})
	})

	Describe("ImportRowsWithColumns", func() {
		It("should honor a manual column mapping", func() {
			rows := []tabular.Row{
				{"a": "2024-03-01", "b": "이디야커피", "c": "4,500"},
			}
			cols := tabular.Columns{Date: "a", Merchant: "b", Amount: "c"}

			result, err := service.ImportRowsWithColumns(rows, cols, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Imported).To(Equal(1))
			Expect(result.Transactions[0].MerchantName).To(Equal("이디야커피"))
		})
	})

	Describe("ImportNotifications", func() {
		var (
			text   string
			result *ImportResult
			err    error
		)

		BeforeEach(func() {
			text = "[삼성카드] 승인 15,800원 스타벅스 판교점 02/18 14:23\n" +
				"광고 수신 동의 안내\n"
		})

		JustBeforeEach(func() {
			result, err = service.ImportNotifications(text, 1)
		})

		It("should import the parseable line and skip the rest", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Imported).To(Equal(1))
			Expect(result.Skipped).To(Equal(1))
		})

		It("should carry the provider tag and memo", func() {
			tx := result.Transactions[0]
			Expect(tx.SourceTag).To(Equal("삼성"))
			Expect(tx.Memo).To(Equal("[삼성카드]"))
			Expect(tx.Type).To(Equal(model.TypeExpense))
		})

		It("should stamp the notification time", func() {
			Expect(result.Transactions[0].Date).To(Equal(time.Date(2024, 2, 18, 14, 23, 0, 0, time.Local)))
		})

		When("the same paste is imported twice", func() {
			It("should deduplicate against the store", func() {
				again, err2 := service.ImportNotifications(text, 1)
				Expect(err2).ToNot(HaveOccurred())
				Expect(again.Imported).To(BeZero())
				Expect(again.Duplicates).To(Equal(1))
			})
		})
	})

	Describe("ConfirmCategory", func() {
		It("should learn a rule the next classification uses", func() {
			kitchen, err := db.CategoryByName("식비")
			Expect(err).ToNot(HaveOccurred())

			before, err := service.Classify("우리동네김치찌개", 9000)
			Expect(err).ToNot(HaveOccurred())
			Expect(before.Confidence).To(BeZero())

			Expect(service.ConfirmCategory("우리동네김치찌개", kitchen.ID, 9000, "")).To(Succeed())

			after, err := service.Classify("우리동네김치찌개", 9000)
			Expect(err).ToNot(HaveOccurred())
			Expect(after.CategoryName).To(Equal("식비"))
			Expect(after.Confidence).To(Equal(1.0))
		})
	})
})
