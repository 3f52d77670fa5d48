package s3

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"s3://models/cascade/facefinder", "models", "cascade/facefinder", false},
		{"s3://models/facefinder", "models", "facefinder", false},
		{"s3://models/", "", "", true},
		{"s3:///facefinder", "", "", true},
		{"./models/facefinder", "", "", true},
	}

	for _, tt := range tests {
		bucket, key, err := ParseURI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if bucket != tt.wantBucket || key != tt.wantKey {
			t.Errorf("ParseURI(%q) = (%q, %q), want (%q, %q)", tt.uri, bucket, key, tt.wantBucket, tt.wantKey)
		}
	}
}

func TestIsURI(t *testing.T) {
	if !IsURI("s3://bucket/key") {
		t.Error("Expected s3 uri to be recognised")
	}
	if IsURI("/var/models/facefinder") {
		t.Error("Expected local path to be rejected")
	}
}
