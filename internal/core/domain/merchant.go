package domain

// Merchant is the single login identity of this deployment.
type Merchant struct {
	MerchantID   string `json:"merchantID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	AuditFields
}
