package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateExpiringReport - ежедневный отчет об истекающих подписках
const TemplateExpiringReport = "expiring_report"

const expiringReportHTML = `<h2>{{.Title}}</h2>
<p>Gym #{{.GymID}}, {{.Date}}: {{len .Members}} member(s).</p>
{{if .Members}}
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Name</th><th>Mobile</th><th>Plan</th><th>Next bill date</th></tr>
  {{range .Members}}
  <tr><td>{{.Name}}</td><td>{{.MobileNo}}</td><td>{{.Plan}}</td><td>{{if .NextBillDate}}{{.NextBillDate}}{{end}}</td></tr>
  {{end}}
</table>
{{end}}`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	if err := tm.AddTemplate(TemplateExpiringReport, expiringReportHTML); err != nil {
		panic(err)
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
