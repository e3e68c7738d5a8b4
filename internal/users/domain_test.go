package users

import "testing"

func TestCreateInputValidate(t *testing.T) {
	valid := CreateInput{Email: "amira@taxdesk.local", FullName: "Amira Khalid", Password: "s3cret-pass"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"bad email", CreateInput{Email: "not-an-email", FullName: "Amira Khalid", Password: "s3cret-pass"}},
		{"blank name", CreateInput{Email: "amira@taxdesk.local", FullName: "   ", Password: "s3cret-pass"}},
		{"short password", CreateInput{Email: "amira@taxdesk.local", FullName: "Amira Khalid", Password: "short"}},
	}
	for _, tc := range cases {
		if err := tc.input.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
