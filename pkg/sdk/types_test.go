package sdk

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	if ParseRole("admin") != RoleAdmin {
		t.Fatal("admin did not parse")
	}
	if ParseRole("staff") != RoleStaff {
		t.Fatal("staff did not parse")
	}
	if ParseRole("citizen") != RoleCitizen {
		t.Fatal("citizen did not parse")
	}
	// Unknown tiers must never map to anything but unresolved.
	for _, s := range []string{"", "Admin", "superuser", "ADMIN", "root"} {
		if got := ParseRole(s); got != RoleUnresolved {
			t.Fatalf("ParseRole(%q) = %v, want unresolved", s, got)
		}
	}
}

func TestRoleJSON(t *testing.T) {
	var user User
	if err := json.Unmarshal([]byte(`{"email":"a@b.com","role":"staff"}`), &user); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if user.Role != RoleStaff {
		t.Fatalf("expected staff, got %v", user.Role)
	}

	var unknown User
	if err := json.Unmarshal([]byte(`{"email":"a@b.com","role":"owner"}`), &unknown); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if unknown.Role != RoleUnresolved {
		t.Fatalf("unknown role must collapse to unresolved, got %v", unknown.Role)
	}

	data, err := json.Marshal(RoleAdmin)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"admin"` {
		t.Fatalf("expected \"admin\", got %s", data)
	}
}

func TestIssuePageTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{25, 12, 3},
		{24, 12, 2},
		{0, 12, 0},
		{5, 0, 0},
		{1, 12, 1},
	}
	for _, tt := range tests {
		page := IssuePage{Total: tt.total, Limit: tt.limit}
		if got := page.TotalPages(); got != tt.want {
			t.Fatalf("TotalPages(total=%d, limit=%d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestCredentialsIdentity(t *testing.T) {
	var none *Credentials
	if none.Identity() != nil {
		t.Fatal("nil credentials must yield nil identity")
	}
	if (&Credentials{}).Identity() != nil {
		t.Fatal("credentials without a subject must yield nil identity")
	}

	creds := &Credentials{Subject: "u1", Email: "a@b.com", DisplayName: "Ana"}
	identity := creds.Identity()
	if identity == nil || identity.Email != "a@b.com" || identity.DisplayName != "Ana" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}
