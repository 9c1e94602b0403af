package customer

// Type classifies the buyer.
type Type string

const (
	TypeChain       Type = "连锁便利店"
	TypeSupermarket Type = "超市"
	TypeIndividual  Type = "个人"
)

// Billing is an opaque payment-terms label; no accounting is attached to it.
type Billing string

const (
	BillingNet30 Billing = "月结30天"
	BillingNet60 Billing = "月结60天"
	BillingCash  Billing = "现结"
)

// Mode is the customer's preferred presentation. It is metadata only: the
// view router decides which client surface is shown.
type Mode string

const (
	ModeMobile  Mode = "mobile"
	ModeDesktop Mode = "desktop"
)

// FirstID is the id given to the first customer of an empty store.
const FirstID int64 = 101

// Customer is a wholesale account managed by the admin.
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Type    Type    `json:"type"`
	Billing Billing `json:"billing"`
	Address string  `json:"address"`
	Mode    Mode    `json:"mode"`
}
