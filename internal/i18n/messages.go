// Package i18n holds the user-facing string tables. Callers receive a
// Messages value explicitly instead of reading a global, so output text
// is testable and the locale is a plain configuration choice.
package i18n

// Supported locales.
const (
	English = "en"
	Arabic  = "ar"
)

// Messages is one locale's user-facing strings.
type Messages struct {
	NoDataDetected string
	MissingSheets  string
	EntrySaved     string
	EntriesCleared string
	SummaryTitle   string
	TotalIncome    string
	TotalExpenses  string
	NetBalance     string
	SavingsRate    string
	Months         [12]string
}

var english = Messages{
	NoDataDetected: "no transaction data detected in message",
	MissingSheets:  "workbook must contain both Income and Expenses sheets",
	EntrySaved:     "entry saved",
	EntriesCleared: "all income and expense entries cleared",
	SummaryTitle:   "Monthly Summary",
	TotalIncome:    "Total income",
	TotalExpenses:  "Total expenses",
	NetBalance:     "Net balance",
	SavingsRate:    "Savings rate",
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var arabic = Messages{
	NoDataDetected: "لم يتم العثور على بيانات معاملة في الرسالة",
	MissingSheets:  "يجب أن يحتوي الملف على ورقتي الدخل والمصروفات",
	EntrySaved:     "تم حفظ القيد",
	EntriesCleared: "تم مسح جميع قيود الدخل والمصروفات",
	SummaryTitle:   "الملخص الشهري",
	TotalIncome:    "إجمالي الدخل",
	TotalExpenses:  "إجمالي المصروفات",
	NetBalance:     "الرصيد الصافي",
	SavingsRate:    "نسبة الادخار",
	Months: [12]string{
		"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
	},
}

// For returns the string table for a locale, defaulting to English for
// anything unrecognized.
func For(locale string) Messages {
	if locale == Arabic {
		return arabic
	}
	return english
}
