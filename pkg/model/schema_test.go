package model_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
)

func TestDecodeDraft(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    model.Draft
		wantErr bool
	}{
		{
			name: "complete",
			raw:  `{"fullName":"Ada","email":"a@b.c","password":"abcd123!","phoneNumber":"1234567890","age":"30","country":"us","agreeToTerms":true}`,
			want: model.Draft{FullName: "Ada", Email: "a@b.c", Password: "abcd123!", PhoneNumber: "1234567890", Age: "30", Country: "us", AgreeToTerms: true},
		},
		{
			name: "missing keys default",
			raw:  `{"email":"x@y.z"}`,
			want: model.Draft{Email: "x@y.z"},
		},
		{
			name: "unknown keys ignored",
			raw:  `{"fullName":"Ada","nickname":"ada"}`,
			want: model.Draft{FullName: "Ada"},
		},
		{name: "not json", raw: `{fullName:`, wantErr: true},
		{name: "array payload", raw: `[1,2]`, wantErr: true},
		{name: "null payload", raw: `null`, wantErr: true},
		{name: "wrong text type", raw: `{"age":30}`, wantErr: true},
		{name: "wrong checkbox type", raw: `{"agreeToTerms":"yes"}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.DecodeDraft([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("draft mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckRecord(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	valid := model.Draft{
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		Password:     "abcd123!",
		PhoneNumber:  "1234567890",
		Age:          "30",
		Country:      "uk",
		AgreeToTerms: true,
	}
	if err := model.CheckRecord(model.NewSubmissionRecord(valid, at)); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	invalid := valid
	invalid.AgreeToTerms = false
	if err := model.CheckRecord(model.NewSubmissionRecord(invalid, at)); err == nil {
		t.Fatalf("expected contract violation for unchecked terms")
	}
}
