package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// AccessToken adalah token partisi data yang diberikan eksplisit ke user.
// Satu token membuka satu divisi CRSD.
type AccessToken string

const (
	AccessCRSD1 AccessToken = "crsd1"
	AccessCRSD2 AccessToken = "crsd2"
)

// DivisionName memetakan token ke nama divisi di kolom users.divisi.
// Token yang tidak dikenal mengembalikan ok=false dan tidak pernah
// membuka data apa pun.
func (t AccessToken) DivisionName() (string, bool) {
	switch t {
	case AccessCRSD1:
		return "CRSD 1", true
	case AccessCRSD2:
		return "CRSD 2", true
	default:
		return "", false
	}
}

// AccessSet adalah himpunan AccessToken milik satu user. Disimpan sebagai
// array JSON yang terurut dan bebas duplikat, jadi nilai yang sama selalu
// ter-serialize identik.
type AccessSet []AccessToken

// Has memeriksa keanggotaan token.
func (s AccessSet) Has(t AccessToken) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// Normalize mengembalikan salinan yang terurut, bebas duplikat, dan hanya
// berisi token yang dikenal.
func (s AccessSet) Normalize() AccessSet {
	seen := make(map[AccessToken]bool, len(s))
	out := make(AccessSet, 0, len(s))
	for _, t := range s {
		if _, ok := t.DivisionName(); !ok {
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Value mengimplementasikan driver.Valuer; selalu menulis bentuk normal.
func (s AccessSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s.Normalize())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan mengimplementasikan sql.Scanner.
func (s *AccessSet) Scan(value interface{}) error {
	if value == nil {
		*s = AccessSet{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for AccessSet", value)
	}

	if len(raw) == 0 {
		*s = AccessSet{}
		return nil
	}

	var parsed AccessSet
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	*s = parsed.Normalize()
	return nil
}
