package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/roster"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	r, err := roster.Load("")
	require.NoError(t, err)
	return New(r)
}

func validSubmission() types.Submission {
	return types.Submission{
		StudentName: "ACHEUK Achraf",
		Category:    "Technical Support",
		Reclamation: "My login is broken for two weeks now.",
		Email:       "achraf@univ-annaba.dz",
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(validSubmission())
	require.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "ACHEUK Achraf", res.Sanitized.StudentName)
	assert.Equal(t, "Technical Support", res.Sanitized.Category)
	assert.Equal(t, "My login is broken for two weeks now.", res.Sanitized.Reclamation)
	assert.Equal(t, "achraf@univ-annaba.dz", res.Sanitized.Email)
}

func TestValidate_ReturnsPreEscapeReclamation(t *testing.T) {
	v := newTestValidator(t)

	s := validSubmission()
	s.Reclamation = "  See http://a.example/path & tell me what's wrong.  "

	res := v.Validate(s)
	require.True(t, res.Valid)
	assert.Equal(t, "See http://a.example/path & tell me what's wrong.", res.Reclamation,
		"raw body is trimmed but never escaped")
	assert.Equal(t, "See http:&#x2F;&#x2F;a.example&#x2F;path &amp; tell me what&#x27;s wrong.",
		res.Sanitized.Reclamation)
}

func TestValidate_TrimsFields(t *testing.T) {
	v := newTestValidator(t)

	s := validSubmission()
	s.StudentName = "  ACHEUK Achraf  "
	s.Category = " Technical Support "

	res := v.Validate(s)
	require.True(t, res.Valid)
	assert.Equal(t, "ACHEUK Achraf", res.Sanitized.StudentName)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(types.Submission{
		StudentName: "NOBODY Nobody",
		Category:    "Complaints",
		Reclamation: "too short",
		Email:       "not-an-email",
	})
	require.False(t, res.Valid)
	assert.Equal(t, []string{
		"Invalid student name selected",
		"Invalid category selected",
		"Reclamation must be at least 10 characters long",
		"Invalid email address format",
	}, res.Errors)
}

func TestValidate_RequiredFields(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(types.Submission{})
	require.False(t, res.Valid)
	assert.Equal(t, []string{
		"Student name is required",
		"Category is required",
		"Reclamation message is required",
	}, res.Errors)
}

func TestValidate_ReclamationBounds(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		length  int
		wantErr string
	}{
		{"below minimum", 9, "Reclamation must be at least 10 characters long"},
		{"at minimum", 10, ""},
		{"at maximum", 1000, ""},
		{"above maximum", 1001, "Reclamation must not exceed 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.Reclamation = strings.Repeat("a", tt.length)
			res := v.Validate(s)

			if tt.wantErr == "" {
				assert.True(t, res.Valid)
				return
			}
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1, "exactly one length error expected")
			assert.Equal(t, tt.wantErr, res.Errors[0])
		})
	}
}

func TestValidate_EmailOptional(t *testing.T) {
	v := newTestValidator(t)

	s := validSubmission()
	s.Email = ""
	res := v.Validate(s)
	require.True(t, res.Valid)
	assert.Empty(t, res.Sanitized.Email)

	s.Email = "   "
	res = v.Validate(s)
	assert.True(t, res.Valid, "whitespace-only email is treated as absent")
}

func TestValidate_EmailNormalizedLowercase(t *testing.T) {
	v := newTestValidator(t)

	s := validSubmission()
	s.Email = "Achraf.ACHEUK@Univ-Annaba.DZ"
	res := v.Validate(s)
	require.True(t, res.Valid)
	assert.Equal(t, "achraf.acheuk@univ-annaba.dz", res.Sanitized.Email)
}

func TestValidate_SuspiciousContent(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name string
		text string
	}{
		{"script tag", "Dear admin, <script>alert(1)</script> please help"},
		{"script tag uppercase", "Dear admin, <SCRIPT src=x> please help"},
		{"javascript uri", "see javascript:doEvil() for the details here"},
		{"event handler", "my page has onclick=steal() in it somewhere"},
		{"iframe", "embedded <iframe src=x> is breaking my page"},
		{"eval", "the code calls eval(userInput) and crashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.Reclamation = tt.text
			res := v.Validate(s)
			require.False(t, res.Valid)
			assert.Contains(t, res.Errors, "Suspicious content detected in reclamation")
		})
	}
}

func TestValidate_SuspiciousContentReportedAlongsideOtherErrors(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(types.Submission{
		StudentName: "NOBODY Nobody",
		Category:    "Technical Support",
		Reclamation: "<script>alert(1)</script> my account is broken",
	})
	require.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Invalid student name selected")
	assert.Contains(t, res.Errors, "Suspicious content detected in reclamation")
}

func TestValidate_SanitizedFieldsEscaped(t *testing.T) {
	v := newTestValidator(t)

	s := validSubmission()
	s.Reclamation = `The "portal" shows <b>errors</b> & won't load`
	res := v.Validate(s)
	require.True(t, res.Valid)
	assert.Equal(t,
		"The &quot;portal&quot; shows &lt;b&gt;errors&lt;&#x2F;b&gt; &amp; won&#x27;t load",
		res.Sanitized.Reclamation)
}
