package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>FraudLens</title>
    <meta name="description" content="Simulated DeFi fraud monitoring">
    <link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>◎</text></svg>">
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --bg: #0b0d12;
            --bg-subtle: #151922;
            --border: #262c38;
            --text: #f4f4f5;
            --text-secondary: #a1a1aa;
            --text-tertiary: #5b6070;
            --green: #22c55e;
            --amber: #f59e0b;
            --red: #ef4444;
            --blue: #3b82f6;
            --purple: #a855f7;
        }

        body {
            font-family: -apple-system, 'Segoe UI', sans-serif;
            background: var(--bg);
            color: var(--text);
            min-height: 100vh;
            font-size: 14px;
            line-height: 1.5;
            -webkit-font-smoothing: antialiased;
        }

        .mono { font-family: ui-monospace, 'SFMono-Regular', Menlo, monospace; }

        .container { max-width: 1400px; margin: 0 auto; padding: 0 24px; }

        header {
            border-bottom: 1px solid var(--border);
            padding: 16px 0;
            position: sticky;
            top: 0;
            background: var(--bg);
            z-index: 10;
        }

        .header-inner { display: flex; justify-content: space-between; align-items: center; }
        .logo { font-weight: 600; font-size: 16px; letter-spacing: -0.01em; }
        .logo span { color: var(--purple); }

        .live { display: flex; align-items: center; gap: 8px; color: var(--text-secondary); font-size: 13px; }
        .dot { width: 8px; height: 8px; border-radius: 50%; background: var(--text-tertiary); }
        .dot.on { background: var(--green); box-shadow: 0 0 8px var(--green); }

        .stats { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; margin: 24px 0; }
        .stat { background: var(--bg-subtle); border: 1px solid var(--border); border-radius: 8px; padding: 16px; }
        .stat-label { color: var(--text-secondary); font-size: 12px; text-transform: uppercase; letter-spacing: 0.04em; }
        .stat-value { font-size: 24px; font-weight: 600; margin-top: 4px; }

        .grid { display: grid; grid-template-columns: 2fr 1fr; gap: 16px; margin-bottom: 16px; }
        .card { background: var(--bg-subtle); border: 1px solid var(--border); border-radius: 8px; padding: 16px; }
        .card h2 { font-size: 14px; font-weight: 600; margin-bottom: 12px; }

        table { width: 100%; border-collapse: collapse; font-size: 13px; }
        th { text-align: left; color: var(--text-tertiary); font-weight: 500; padding: 6px 8px; border-bottom: 1px solid var(--border); }
        td { padding: 6px 8px; border-bottom: 1px solid var(--border); }

        .badge { padding: 2px 8px; border-radius: 999px; font-size: 11px; font-weight: 600; text-transform: uppercase; }
        .approved, .online { background: rgba(34,197,94,.12); color: var(--green); }
        .flagged, .high, .updating, .medium { background: rgba(245,158,11,.12); color: var(--amber); }
        .blocked, .critical { background: rgba(239,68,68,.12); color: var(--red); }

        .alert { border-left: 3px solid var(--amber); padding: 8px 12px; margin-bottom: 8px; background: var(--bg); border-radius: 4px; }
        .alert.sev-critical { border-color: var(--red); }
        .alert.dismissed { opacity: .4; }
        .alert-head { display: flex; justify-content: space-between; align-items: center; }
        .alert-title { font-weight: 600; }
        .alert-meta { color: var(--text-tertiary); font-size: 12px; }
        .alert button { background: none; border: 1px solid var(--border); color: var(--text-secondary); border-radius: 4px; cursor: pointer; font-size: 11px; padding: 2px 6px; }

        .chart { display: flex; align-items: flex-end; gap: 3px; height: 140px; }
        .bar { flex: 1; background: var(--blue); border-radius: 2px 2px 0 0; min-height: 2px; }
        .bar.hot { background: var(--red); }
        .chart-labels { display: flex; justify-content: space-between; color: var(--text-tertiary); font-size: 11px; margin-top: 4px; }

        .metric-row { display: flex; justify-content: space-between; padding: 4px 0; }
        .metric-row span:last-child { font-weight: 600; }

        .empty { color: var(--text-tertiary); padding: 12px 0; }
    </style>
</head>
<body>
    <header>
        <div class="container header-inner">
            <div class="logo">Fraud<span>Lens</span></div>
            <div class="live"><div class="dot" id="dot"></div><span id="conn">connecting</span></div>
        </div>
    </header>

    <main class="container">
        <div class="stats">
            <div class="stat"><div class="stat-label">Total transactions</div><div class="stat-value mono" id="s-total">-</div></div>
            <div class="stat"><div class="stat-label">Flagged</div><div class="stat-value mono" id="s-flagged">-</div></div>
            <div class="stat"><div class="stat-label">Average risk</div><div class="stat-value mono" id="s-risk">-</div></div>
            <div class="stat"><div class="stat-label">Active contracts</div><div class="stat-value mono" id="s-contracts">-</div></div>
        </div>

        <div class="grid">
            <div class="card">
                <h2>Live transaction monitor</h2>
                <table>
                    <thead><tr><th>Hash</th><th>From</th><th>Amount</th><th>Chain</th><th>Risk</th><th>Status</th></tr></thead>
                    <tbody id="txs"></tbody>
                </table>
            </div>
            <div class="card">
                <h2>Fraud alerts</h2>
                <div id="alerts"></div>
            </div>
        </div>

        <div class="grid">
            <div class="card">
                <h2>Risk score, last 24 hours</h2>
                <div class="chart" id="chart"></div>
                <div class="chart-labels" id="chart-labels"></div>
            </div>
            <div class="card">
                <h2>Model performance</h2>
                <div id="models"></div>
            </div>
        </div>

        <div class="grid">
            <div class="card">
                <h2>Blockchain status</h2>
                <table>
                    <thead><tr><th>Chain</th><th>Status</th><th>Latency</th><th>Block</th><th>Gas</th><th>Contracts</th><th>Wallets</th></tr></thead>
                    <tbody id="chains"></tbody>
                </table>
            </div>
            <div class="card">
                <h2>DeFi protocols</h2>
                <table>
                    <thead><tr><th>Protocol</th><th>TVL</th><th>Risk</th></tr></thead>
                    <tbody id="protocols"></tbody>
                </table>
            </div>
        </div>
    </main>

    <script>
        var MAX_ROWS = 10;
        var state = { transactions: [], alerts: [], risk: { points: [] }, models: null, chains: null, overview: null };

        function esc(s) {
            return String(s).replace(/[&<>"']/g, function (c) {
                return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[c];
            });
        }
        function abbrev(s) { return s && s.length > 14 ? s.slice(0, 8) + '...' + s.slice(-4) : s; }
        function num(n) { return Number(n).toLocaleString(); }
        function fixed(n, d) { return Number(n).toFixed(d); }
        function badge(cls, text) { return '<span class="badge ' + esc(cls) + '">' + esc(text) + '</span>'; }

        function renderOverview() {
            var o = state.overview;
            if (!o) return;
            document.getElementById('s-total').textContent = num(o.totalTransactions);
            document.getElementById('s-flagged').textContent = num(o.flaggedTransactions);
            document.getElementById('s-risk').textContent = fixed(o.averageRiskScore, 1) + '%';
            document.getElementById('s-contracts').textContent = num(o.activeContracts);
        }

        function renderTransactions() {
            var rows = state.transactions.map(function (tx) {
                return '<tr><td class="mono">' + esc(abbrev(tx.hash)) + '</td>' +
                    '<td class="mono">' + esc(abbrev(tx.from)) + '</td>' +
                    '<td class="mono">' + esc(tx.amount) + ' ' + esc(tx.currency) + '</td>' +
                    '<td>' + esc(tx.blockchain) + '</td>' +
                    '<td class="mono">' + fixed(tx.riskScore, 1) + '</td>' +
                    '<td>' + badge(tx.status, tx.status) + '</td></tr>';
            });
            document.getElementById('txs').innerHTML = rows.join('') || '<tr><td class="empty" colspan="6">No transactions</td></tr>';
        }

        function renderAlerts() {
            var html = state.alerts.map(function (a) {
                var cls = 'alert sev-' + a.severity + (a.dismissed ? ' dismissed' : '');
                return '<div class="' + cls + '">' +
                    '<div class="alert-head"><span class="alert-title">' + esc(a.title) + '</span>' + badge(a.severity, a.severity) + '</div>' +
                    '<div>' + esc(a.description) + '</div>' +
                    '<div class="alert-head"><span class="alert-meta mono">' + esc(abbrev(a.txHash)) + ' &middot; ' + esc(a.autoAction) + '</span>' +
                    (a.dismissed ? '' : '<button data-id="' + esc(a.id) + '">Dismiss</button>') + '</div></div>';
            });
            document.getElementById('alerts').innerHTML = html.join('') || '<div class="empty">No alerts</div>';
        }

        function renderRisk() {
            var pts = state.risk.points || [];
            document.getElementById('chart').innerHTML = pts.map(function (p) {
                return '<div class="bar' + (p.highRisk ? ' hot' : '') + '" title="' + esc(p.label) + ': ' + fixed(p.value, 1) + '%" style="height:' + (p.value / 40 * 100) + '%"></div>';
            }).join('');
            var labels = pts.length ? [pts[0].label, pts[Math.floor(pts.length / 2)].label, pts[pts.length - 1].label] : [];
            document.getElementById('chart-labels').innerHTML = labels.map(function (l) { return '<span>' + esc(l) + '</span>'; }).join('');
        }

        function renderModels() {
            var m = state.models;
            if (!m) return;
            var rows = [
                ['Accuracy', fixed(m.accuracy, 1) + '%'],
                ['Precision', fixed(m.precision, 1) + '%'],
                ['Recall', fixed(m.recall, 1) + '%'],
                ['F1 score', fixed(m.f1Score, 1) + '%'],
                ['False positive rate', fixed(m.falsePositiveRate, 1) + '%'],
                ['Processing time', fixed(m.processingTimeMs, 1) + ' ms']
            ].map(function (r) { return '<div class="metric-row"><span>' + r[0] + '</span><span class="mono">' + r[1] + '</span></div>'; });
            (m.models || []).forEach(function (md) {
                rows.push('<div class="metric-row"><span>' + esc(md.name) + '</span><span>' + badge(md.status, md.status) + '</span></div>');
            });
            document.getElementById('models').innerHTML = rows.join('');
        }

        function renderChains() {
            var c = state.chains;
            if (!c) return;
            document.getElementById('chains').innerHTML = (c.chains || []).map(function (ch) {
                return '<tr><td>' + esc(ch.chain) + '</td><td>' + badge(ch.status, ch.status) + '</td>' +
                    '<td class="mono">' + fixed(ch.latencyMs, 0) + ' ms</td>' +
                    '<td class="mono">' + num(ch.blockHeight) + '</td>' +
                    '<td class="mono">' + (ch.gasPrice < 1 ? fixed(ch.gasPrice, 4) : fixed(ch.gasPrice, 1)) + ' ' + esc(ch.gasUnit) + '</td>' +
                    '<td class="mono">' + num(ch.activeContracts) + '</td>' +
                    '<td class="mono">' + num(ch.monitoredWallets) + '</td></tr>';
            }).join('');
            document.getElementById('protocols').innerHTML = (c.protocols || []).map(function (p) {
                return '<tr><td>' + esc(p.name) + '</td><td class="mono">' + esc(p.tvl) + '</td><td>' + esc(p.riskLevel) + '</td></tr>';
            }).join('');
        }

        function renderAll() {
            renderOverview(); renderTransactions(); renderAlerts(); renderRisk(); renderModels(); renderChains();
        }

        function replaceAlert(updated) {
            state.alerts = state.alerts.map(function (a) { return a.id === updated.id ? updated : a; });
        }

        function handle(ev) {
            switch (ev.type) {
            case 'snapshot':
                state = ev.data;
                state.transactions = state.transactions || [];
                state.alerts = state.alerts || [];
                state.risk = state.risk || { points: [] };
                renderAll();
                break;
            case 'transaction':
                state.transactions = [ev.data].concat(state.transactions).slice(0, MAX_ROWS);
                renderTransactions();
                break;
            case 'alert':
                state.alerts = [ev.data].concat(state.alerts).slice(0, MAX_ROWS);
                renderAlerts();
                break;
            case 'alert_dismissed':
                replaceAlert(ev.data);
                renderAlerts();
                break;
            case 'risk_point':
                state.risk.points = (state.risk.points || []).concat([ev.data]).slice(-24);
                renderRisk();
                break;
            case 'model_metrics':
                state.models = ev.data;
                renderModels();
                break;
            case 'chain_status':
                state.chains = ev.data;
                renderChains();
                break;
            case 'overview':
                state.overview = ev.data;
                renderOverview();
                break;
            }
        }

        document.getElementById('alerts').addEventListener('click', function (e) {
            var id = e.target.getAttribute && e.target.getAttribute('data-id');
            if (!id) return;
            fetch('/api/v1/alerts/' + encodeURIComponent(id) + '/dismiss', { method: 'POST' })
                .then(function (r) { return r.json(); })
                .then(function (body) { if (body.alert) { replaceAlert(body.alert); renderAlerts(); } })
                .catch(function (err) { console.error('dismiss failed', err); });
        });

        function setConn(on) {
            document.getElementById('dot').className = 'dot' + (on ? ' on' : '');
            document.getElementById('conn').textContent = on ? 'live' : 'reconnecting';
        }

        function connect() {
            var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            var ws = new WebSocket(proto + location.host + '/ws');
            ws.onopen = function () { setConn(true); };
            ws.onmessage = function (msg) {
                try { handle(JSON.parse(msg.data)); } catch (err) { console.error('bad event', err); }
            };
            ws.onclose = function () { setConn(false); setTimeout(connect, 2000); };
        }

        connect();
    </script>
</body>
</html>`

// dashboardHandler serves the single-page dashboard
func dashboardHandler(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, dashboardHTML)
}
