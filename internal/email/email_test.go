package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportRow struct {
	Name         string
	MobileNo     string
	Plan         string
	NextBillDate *string
}

func TestTemplateManager_ExpiringReport(t *testing.T) {
	tm := NewTemplateManager()
	date := "2024-04-15"

	html, err := tm.Render(TemplateExpiringReport, TemplateData{
		"Title": "Expiring within 3 days",
		"GymID": 7,
		"Date":  "2024-04-13",
		"Members": []reportRow{
			{Name: "Ann <b>", MobileNo: "555", Plan: "Gold", NextBillDate: &date},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Gym #7")
	assert.Contains(t, html, "1 member(s)")
	assert.Contains(t, html, "2024-04-15")
	assert.Contains(t, html, "Ann &lt;b&gt;")
}

func TestTemplateManager_Unknown(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}

func TestNewProvider_NoHostLogsOnly(t *testing.T) {
	p := NewProvider(&SMTPConfig{}, NewTemplateManager())
	_, ok := p.(*LogProvider)
	assert.True(t, ok)
	assert.NoError(t, p.SendTemplate([]string{"a@b.c"}, "s", TemplateExpiringReport, nil))
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 0}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587}, nil)
	assert.NoError(t, p.Validate())
	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}
