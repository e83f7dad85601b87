package notify

import (
	"testing"

	"github.com/fundbridge/dealroom/internal/config"
)

func TestRenderTemplate(t *testing.T) {
	cases := []struct {
		template string
		data     map[string]string
		want     string
	}{
		{
			template: "application_submitted",
			data:     map[string]string{"companyName": "Acme Robotics"},
			want:     "Your application for Acme Robotics has been received and is awaiting review.",
		},
		{
			template: "status_changed",
			data:     map[string]string{"companyName": "Acme Robotics", "status": "shortlisted"},
			want:     "The application for Acme Robotics moved to status shortlisted.",
		},
		{
			template: "introduction_requested",
			data:     map[string]string{"investor": "LP Fund", "companyName": "Acme Robotics"},
			want:     "Investor LP Fund requested an introduction to Acme Robotics.",
		},
		{
			template: "introduction_decided",
			data:     map[string]string{"status": "approved"},
			want:     "Your introduction request was approved.",
		},
		{
			template: "introduction_backlog",
			data:     map[string]string{"count": "3"},
			want:     "3 introduction requests are waiting for a decision.",
		},
	}
	for _, c := range cases {
		got := renderTemplate(c.template, c.data)
		if got != c.want {
			t.Errorf("renderTemplate(%s) = %q, want %q", c.template, got, c.want)
		}
	}
}

func TestRenderTemplateUnknown(t *testing.T) {
	got := renderTemplate("no_such_template", map[string]string{"k": "v"})
	if got == "" {
		t.Error("unknown template rendered empty")
	}
}

func TestDispatcherNotify(t *testing.T) {
	d, err := NewDispatcher(config.NotifyConfig{PoolSize: 2, From: "noreply@fund.example"})
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}
	defer d.Close()

	// 空收件人直接丢弃，非空收件人不应 panic 或报错
	d.Notify("application_submitted", "", nil)
	d.Notify("application_submitted", "founder@acme.example", map[string]string{"companyName": "Acme Robotics"})
}
