package customers

import "strings"

// MaskEmail obscures the local part of an address for display: local parts
// longer than 4 characters keep the first 2 and last 2 around an
// asterisk run of matching length, shorter ones keep only the first
// character. The domain is never touched. Values without an @ come back
// unchanged.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	switch {
	case len(local) > 4:
		return local[:2] + strings.Repeat("*", len(local)-4) + local[len(local)-2:] + "@" + domain
	case len(local) > 0:
		return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
	}
	return email
}

// MaskPhone replaces the middle of a number with a fixed four-character mask,
// keeping the characters before len/2-2 and from len/2+2 on. Numbers shorter
// than 6 characters come back unmasked.
func MaskPhone(phone string) string {
	if len(phone) < 6 {
		return phone
	}
	mid := len(phone) / 2
	return phone[:mid-2] + "****" + phone[mid+2:]
}
