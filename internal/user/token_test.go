package user

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken("s3cret", "user-1", RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := ParseToken("s3cret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != RoleUser {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, _ := IssueToken("s3cret", "user-1", RoleUser, time.Hour)
	if _, err := ParseToken("other", tok); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok, _ := IssueToken("s3cret", "user-1", RoleUser, -time.Minute)
	if _, err := ParseToken("s3cret", tok); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct-horse") {
		t.Fatal("valid password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("invalid password accepted")
	}
}
