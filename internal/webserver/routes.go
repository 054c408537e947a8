package webserver

import (
	"net/http"

	"github.com/grenas405/meta-documentation/internal/webapi"
)

// registerRoutes sets up API routes and the dashboard page on the given mux.
func registerRoutes(mux *http.ServeMux, store webapi.DecisionStore) {
	webapi.RegisterRoutes(mux, store)
	mux.HandleFunc("GET /{$}", handleDashboard)
}

// handleDashboard serves the single-page dashboard. The page is plain HTML
// with inline script; it renders itself from the JSON API.
func handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML)) //nolint:errcheck
}

const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>metadoc — decision log</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 56rem; color: #1a202c; }
  h1 { font-size: 1.4rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #e2e8f0; }
  .status { font-variant: small-caps; }
  .violations { color: #c53030; }
  .clean { color: #2f855a; }
</style>
</head>
<body>
<h1>Decision log</h1>
<p id="checklist"></p>
<table>
  <thead><tr><th>ID</th><th>Status</th><th>Date</th><th>Title</th></tr></thead>
  <tbody id="decisions"></tbody>
</table>
<script>
async function load() {
  const [decisions, summary] = await Promise.all([
    fetch('/api/decisions').then(r => r.json()),
    fetch('/api/summary').then(r => r.json()),
  ]);
  const tbody = document.getElementById('decisions');
  for (const d of decisions) {
    const tr = document.createElement('tr');
    for (const v of [d.id, d.status, d.date || '', d.title]) {
      const td = document.createElement('td');
      td.textContent = v;
      tr.appendChild(td);
    }
    tbody.appendChild(tr);
  }
  const p = document.getElementById('checklist');
  if (summary.checklist) {
    if (summary.checklist.valid) {
      p.textContent = 'Compliance checklist: all practices met';
      p.className = 'clean';
    } else {
      p.textContent = 'Compliance violations: ' + summary.checklist.violations.join('; ');
      p.className = 'violations';
    }
  } else {
    p.textContent = 'No compliance checklist in this workspace.';
  }
}
load();
</script>
</body>
</html>
`
