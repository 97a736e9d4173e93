package database

import "testing"

func TestConnectRequiresDSN(t *testing.T) {
	db, err := Connect("", false)
	if err == nil {
		t.Fatal("Connect() with empty dsn should fail")
	}
	if db != nil {
		t.Errorf("Connect() db = %v, want nil", db)
	}
}
