package tabular

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/donflow/donflow/internal/model"
)

var _ = Describe("Convert", func() {
	var (
		rows    []Row
		cols    Columns
		records []Record
		skipped int
	)

	BeforeEach(func() {
		cols = Columns{Date: "거래일", Merchant: "가맹점명", Amount: "이용금액"}
	})

	JustBeforeEach(func() {
		records, skipped = Convert(rows, cols)
	})

	When("converting a typical Korean card row", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "24.02.18", "가맹점명": "스타벅스", "이용금액": "15,800원"},
			}
		})

		It("should not skip anything", func() {
			Expect(skipped).To(BeZero())
		})

		It("should expand the two-digit year and zero-pad the date", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Date).To(Equal("2024-02-18"))
		})

		It("should strip the currency suffix and thousands separators", func() {
			Expect(records[0].Amount).To(Equal(int64(15800)))
		})

		It("should keep the merchant name", func() {
			Expect(records[0].Merchant).To(Equal("스타벅스"))
		})

		It("should default the direction to expense", func() {
			Expect(records[0].Type).To(Equal(model.TypeExpense))
		})
	})

	When("the date cell carries a trailing time", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18 14:23", "가맹점명": "쿠팡", "이용금액": "32,000"},
			}
		})

		It("should split the time off the date", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Date).To(Equal("2024-02-18"))
			Expect(records[0].Time).To(Equal("14:23"))
		})
	})

	When("the date uses Korean unit separators", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024년 2월 18일", "가맹점명": "다이소", "이용금액": "5,000원"},
			}
		})

		It("should normalize to YYYY-MM-DD", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Date).To(Equal("2024-02-18"))
		})
	})

	When("the date is a contiguous eight-digit form", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "20240218", "가맹점명": "다이소", "이용금액": "5,000"},
			}
		})

		It("should normalize to YYYY-MM-DD", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Date).To(Equal("2024-02-18"))
		})
	})

	When("the amount is an accounting-style negative", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18", "가맹점명": "환불", "이용금액": "(15,800)"},
			}
		})

		It("should store the absolute magnitude", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Amount).To(Equal(int64(15800)))
		})
	})

	When("the amount carries an explicit plus sign", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-25", "가맹점명": "회사", "이용금액": "+3,000,000"},
			}
		})

		It("should infer income", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Type).To(Equal(model.TypeIncome))
		})
	})

	When("an explicit type column is present", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18", "가맹점명": "급여", "이용금액": "+100", "구분": "출금"},
			}
		})

		It("should prefer the tag over sign inference", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Type).To(Equal(model.TypeExpense))
		})
	})

	When("the type column marks a transfer", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18", "가맹점명": "내계좌", "이용금액": "50,000", "구분": "이체"},
			}
		})

		It("should mark the record as a transfer", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Type).To(Equal(model.TypeTransfer))
		})
	})

	When("a row has a zero amount", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18", "가맹점명": "스타벅스", "이용금액": "0"},
				{"거래일": "2024-02-19", "가맹점명": "쿠팡", "이용금액": "32,000"},
			}
		})

		It("should drop only that row", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Merchant).To(Equal("쿠팡"))
			Expect(skipped).To(Equal(1))
		})
	})

	When("a row has an empty date", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "", "가맹점명": "스타벅스", "이용금액": "15,800"},
			}
		})

		It("should drop the row", func() {
			Expect(records).To(BeEmpty())
			Expect(skipped).To(Equal(1))
		})
	})

	When("a row has a non-numeric amount", func() {
		BeforeEach(func() {
			rows = []Row{
				{"거래일": "2024-02-18", "가맹점명": "스타벅스", "이용금액": "무료"},
			}
		})

		It("should drop the row", func() {
			Expect(records).To(BeEmpty())
			Expect(skipped).To(Equal(1))
		})
	})

	When("the merchant column is unmapped", func() {
		BeforeEach(func() {
			cols = Columns{Date: "거래일", Amount: "이용금액"}
			rows = []Row{
				{"거래일": "2024-02-18", "이용금액": "15,800"},
			}
		})

		It("should convert with an empty merchant", func() {
			Expect(records).To(HaveLen(1))
			Expect(records[0].Merchant).To(BeEmpty())
		})
	})
})
