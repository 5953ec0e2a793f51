package main

import (
	"encoding/json"

	"tabsgo/hostbridge"
)

// renderIndexHTML generates the page served to the browser window.
// The version strings are embedded so the page's accessors stay synchronous;
// ping goes over the /bridge WebSocket.
func renderIndexHTML(versions hostbridge.VersionInfo) string {
	versionsJSON, _ := json.Marshal(versions)

	return `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>tabsgo</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, sans-serif;
    background: #1e1e1e;
    color: #e0e0e0;
    padding: 24px 32px;
}
h2 { font-size: 18px; font-weight: 600; margin-bottom: 20px; }
#info { font-size: 13px; color: #999; margin-bottom: 20px; }
label {
    display: block;
    margin-top: 12px;
    font-size: 13px;
    color: #999;
}
input[type="text"] {
    width: 100%;
    padding: 6px 8px;
    margin-top: 4px;
    background: #2d2d2d;
    border: 1px solid #444;
    border-radius: 4px;
    color: #e0e0e0;
    font-size: 13px;
}
input[type="text"]:focus { outline: none; border-color: #0078d4; }
.actions { display: flex; gap: 8px; margin-bottom: 16px; }
.btn {
    padding: 6px 16px;
    background: #0078d4;
    color: white;
    border: none;
    border-radius: 4px;
    font-size: 13px;
    cursor: pointer;
}
.btn:hover { background: #006cbd; }
#status { font-size: 12px; color: #666; margin: 8px 0 16px 0; }
</style>
</head>
<body>
<h2>Tabs</h2>
<p id="info"></p>
<div class="actions">
    <button class="btn" id="syncTabs">Sync Tabs</button>
    <button class="btn" id="openTabs">Open Tabs</button>
    <button class="btn" id="viewTabs">View Tabs</button>
</div>
<div id="status"></div>
<label for="serverUrl">Server URL</label>
<input type="text" id="serverUrl">
<div class="actions" style="margin-top: 12px">
    <button class="btn" id="saveSettings">Save Settings</button>
</div>

<script>
const VERSIONS = ` + string(versionsJSON) + `;

const bridgeSocket = new WebSocket('ws://' + location.host + '/bridge');
const bridgeOpen = new Promise((resolve, reject) => {
    bridgeSocket.addEventListener('open', resolve);
    bridgeSocket.addEventListener('error', reject);
});
const pending = new Map();
let nextId = 0;

bridgeSocket.addEventListener('message', (ev) => {
    const resp = JSON.parse(ev.data);
    const call = pending.get(resp.id);
    if (!call) return;
    pending.delete(resp.id);
    if (resp.type === 'Error') call.reject(new Error(resp.message));
    else call.resolve(resp.value);
});

bridgeSocket.addEventListener('close', () => {
    for (const call of pending.values()) call.reject(new Error('host bridge closed'));
    pending.clear();
});

window.versions = {
    chrome: () => VERSIONS.chrome,
    node: () => VERSIONS.node,
    electron: () => VERSIONS.electron,
    ping: async () => {
        await bridgeOpen;
        const id = String(++nextId);
        return new Promise((resolve, reject) => {
            pending.set(id, { resolve, reject });
            bridgeSocket.send(JSON.stringify({ id: id, type: 'Ping' }));
        });
    },
};

const information = document.getElementById('info');
information.innerText = 'This app is using Chrome (v' + versions.chrome() +
    '), Node.js (v' + versions.node() + '), and Electron (v' + versions.electron() + ')';

const syncTabsBtn = document.getElementById('syncTabs');
const openTabsBtn = document.getElementById('openTabs');
const viewTabsBtn = document.getElementById('viewTabs');
const statusDiv = document.getElementById('status');
const serverUrlInput = document.getElementById('serverUrl');
const saveSettingsBtn = document.getElementById('saveSettings');

versions.ping().then(
    (response) => console.log(response),
    (err) => console.error('ping failed:', err),
);
</script>
</body>
</html>`
}
