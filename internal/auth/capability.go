package auth

import "strings"

// Capability is a single permission of the restricted user role. The admin
// role implicitly holds all of them.
type Capability string

const (
	CanAddTransaction          Capability = "canAddTransaction"
	CanEditTransaction         Capability = "canEditTransaction"
	CanDeleteTransaction       Capability = "canDeleteTransaction"
	CanManageFundTransfers     Capability = "canManageFundTransfers"
	CanManageInternalTransfers Capability = "canManageInternalTransfers"
	CanExport                  Capability = "canExport"
	CanViewQuote               Capability = "canViewQuote"
	CanEditMembers             Capability = "canEditMembers"
	CanEditInstallments        Capability = "canEditInstallments"
	CanViewConti               Capability = "canViewConti"
	CanViewAnticipi            Capability = "canViewAnticipi"
	CanViewAutofinanziamenti   Capability = "canViewAutofinanziamenti"
	CanManageAutofinanziamenti Capability = "canManageAutofinanziamenti"
)

// Capabilities lists every known capability.
var Capabilities = []Capability{
	CanAddTransaction,
	CanEditTransaction,
	CanDeleteTransaction,
	CanManageFundTransfers,
	CanManageInternalTransfers,
	CanExport,
	CanViewQuote,
	CanEditMembers,
	CanEditInstallments,
	CanViewConti,
	CanViewAnticipi,
	CanViewAutofinanziamenti,
	CanManageAutofinanziamenti,
}

func (c Capability) Valid() bool {
	for _, known := range Capabilities {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCapabilities reads the comma-separated capability list stored in the
// settings row. Unknown names are dropped.
func ParseCapabilities(s string) []Capability {
	if s == "" {
		return nil
	}

	var caps []Capability
	for _, part := range strings.Split(s, ",") {
		c := Capability(strings.TrimSpace(part))
		if c.Valid() {
			caps = append(caps, c)
		}
	}
	return caps
}

// FormatCapabilities renders a capability list into the stored form.
func FormatCapabilities(caps []Capability) string {
	parts := make([]string, 0, len(caps))
	for _, c := range caps {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ",")
}
