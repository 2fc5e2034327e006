package cart

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Labels carries every user-facing string of the cart, including the pieces
// of the rendered order text that the downstream reader sees.
type Labels struct {
	Locale          string
	Currency        string
	CurrencyLong    string
	TotalLabel      string
	EmptyCart       string
	Separator       string
	TimestampLabel  string
	TimestampLayout string

	ItemAdded  string
	SaveFailed string
	Remove     string
	Clear      string
	Yes        string
	No         string

	ConfirmClear           string
	ConfirmRemove          string
	ConfirmDecrementToZero string

	// Page copy.
	CatalogTitle  string
	CartTitle     string
	OrderTitle    string
	AddToCart     string
	AllCategories string
	Search        string
	SortByPrice   string
	SortByName    string
	NoProducts    string
	GoToOrder     string
	StaleLine     string
	InvalidInput  string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	Note          string
	PlaceOrder    string
	SendingOrder  string
	ContinueOrder string
}

// separator is the fixed rule between the item lines and the total line.
const separator = "---------------------------"

var macedonian = Labels{
	Locale:          "mk",
	Currency:        "ден",
	CurrencyLong:    "денари",
	TotalLabel:      "Вкупно",
	EmptyCart:       "Кошничката е празна.",
	Separator:       separator,
	TimestampLabel:  "Време на нарачката",
	TimestampLayout: "2.1.2006, 15:04:05",

	ItemAdded:  "Додадено во кошничка!",
	SaveFailed: "Кошничката не може да се зачува. Обидете се повторно.",
	Remove:     "Отстрани",
	Clear:      "Исчисти ја кошничката",
	Yes:        "Да",
	No:         "Не",

	ConfirmClear:           "Дали сте сигурни дека сакате да ја исчистите кошничката?",
	ConfirmRemove:          "Дали сте сигурни дека сакате да го отстраните овој производ?",
	ConfirmDecrementToZero: "Дали сакате да го отстраните производот?",

	CatalogTitle:  "Производи",
	CartTitle:     "Кошничка",
	OrderTitle:    "Нарачка",
	AddToCart:     "Додади во кошничка",
	AllCategories: "Сите",
	Search:        "Пребарај",
	SortByPrice:   "Подреди по цена",
	SortByName:    "Подреди по име",
	NoProducts:    "Нема производи.",
	GoToOrder:     "Продолжи кон нарачка",
	StaleLine:     "Кошничката е променета во друг прозорец. Прикажана е најновата состојба.",
	InvalidInput:  "Проверете ги внесените податоци.",
	CustomerName:  "Име и презиме",
	Email:         "Е-пошта",
	Phone:         "Телефон",
	Address:       "Адреса за достава",
	Note:          "Забелешка",
	PlaceOrder:    "Испрати нарачка",
	SendingOrder:  "Нарачката се испраќа…",
	ContinueOrder: "Продолжи",
}

var english = Labels{
	Locale:          "en",
	Currency:        "MKD",
	CurrencyLong:    "MKD",
	TotalLabel:      "Total",
	EmptyCart:       "Your cart is empty.",
	Separator:       separator,
	TimestampLabel:  "Order time",
	TimestampLayout: "1/2/2006, 3:04:05 PM",

	ItemAdded:  "Added to cart!",
	SaveFailed: "Your cart could not be saved. Please try again.",
	Remove:     "Remove",
	Clear:      "Clear cart",
	Yes:        "Yes",
	No:         "No",

	ConfirmClear:           "Are you sure you want to clear the cart?",
	ConfirmRemove:          "Are you sure you want to remove this product?",
	ConfirmDecrementToZero: "Do you want to remove the product?",

	CatalogTitle:  "Products",
	CartTitle:     "Cart",
	OrderTitle:    "Order",
	AddToCart:     "Add to cart",
	AllCategories: "All",
	Search:        "Search",
	SortByPrice:   "Sort by price",
	SortByName:    "Sort by name",
	NoProducts:    "No products found.",
	GoToOrder:     "Continue to order",
	StaleLine:     "The cart changed in another window. Showing the latest state.",
	InvalidInput:  "Please check the details you entered.",
	CustomerName:  "Full name",
	Email:         "Email",
	Phone:         "Phone",
	Address:       "Delivery address",
	Note:          "Note",
	PlaceOrder:    "Send order",
	SendingOrder:  "Sending your order…",
	ContinueOrder: "Continue",
}

var (
	supported = []language.Tag{language.Macedonian, language.English}
	byTag     = []Labels{macedonian, english}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor returns the label set for a locale tag such as "mk" or "en-US".
// Unknown locales get the Macedonian set.
func LabelsFor(locale string) Labels {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return macedonian
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return macedonian
	}
	return byTag[idx]
}

// Negotiate picks labels from an Accept-Language header, falling back to
// the configured default locale.
func Negotiate(acceptLanguage, fallback string) Labels {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LabelsFor(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || conf == language.Low {
		return LabelsFor(fallback)
	}
	return byTag[idx]
}

// FormatTimestamp renders t in the locale's date-time layout.
func (l Labels) FormatTimestamp(t time.Time) string {
	layout := l.TimestampLayout
	if layout == "" {
		layout = time.DateTime
	}
	return t.Format(layout)
}

// PromptText returns the confirmation question for a prompt.
func (l Labels) PromptText(p Prompt) string {
	switch p {
	case PromptClear:
		return l.ConfirmClear
	case PromptRemove:
		return l.ConfirmRemove
	case PromptDecrementToZero:
		return l.ConfirmDecrementToZero
	}
	return ""
}

// ControlText is the button caption for a view binding.
func (l Labels) ControlText(a Action) string {
	switch a {
	case ActionDecrease:
		return "-"
	case ActionIncrease:
		return "+"
	case ActionRemove:
		return l.Remove
	case ActionClear:
		return l.Clear
	}
	return string(a)
}
