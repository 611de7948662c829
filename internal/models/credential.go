package models

// AccountCredential stores a login for some service. The password is kept
// as plaintext.
type AccountCredential struct {
	BaseRecord
	Title    string `json:"title"`
	Service  string `json:"service"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c AccountCredential) WithMeta(m BaseRecord) AccountCredential {
	c.BaseRecord = m
	return c
}
