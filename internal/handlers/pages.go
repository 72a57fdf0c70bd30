package handlers

import (
	"fmt"
	"html"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/meetlite-api/internal/middleware"
)

// PageHandler serves the two server-rendered entry pages: the home page
// with the meeting actions, and the login page with the provider buttons.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *drift.Context) {
	userName := middleware.GetUserName(c)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>MeetLite</title>
    <style>
        * { box-sizing: border-box; }
        body { font-family: system-ui, -apple-system, sans-serif; background: #f9fafb; color: #374151; margin: 0; padding: 40px 20px; }
        .container { max-width: 520px; margin: 0 auto; }
        .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 32px; }
        h1 { font-size: 24px; font-weight: 600; color: #111827; margin: 0; }
        .user { color: #6b7280; font-size: 14px; }
        .actions { display: grid; gap: 12px; margin-bottom: 32px; }
        button { background: #2563eb; color: #fff; border: none; border-radius: 6px; padding: 12px 16px; font-size: 15px; font-weight: 500; cursor: pointer; }
        button.secondary { background: #374151; }
        button:hover { opacity: 0.9; }
        .join { display: flex; gap: 8px; }
        .join input { flex: 1; border: 1px solid #e5e7eb; border-radius: 6px; padding: 12px; font-size: 15px; }
        .link-box { background: #f3f4f6; border: 1px solid #e5e7eb; border-radius: 6px; padding: 12px; font-family: monospace; font-size: 13px; word-break: break-all; display: none; }
        .error { color: #991b1b; font-size: 14px; margin-top: 12px; }
        a.logout { color: #6b7280; font-size: 13px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>MeetLite</h1>
            <span class="user">%s &middot; <a class="logout" href="#" onclick="logout()">Sign out</a></span>
        </div>
        <div class="actions">
            <button onclick="startMeeting()">New meeting</button>
            <button class="secondary" onclick="createLink()">Create a meeting for later</button>
            <div class="join">
                <input id="join-input" placeholder="Enter a link or code" />
                <button onclick="joinMeeting()">Join</button>
            </div>
        </div>
        <div id="link-box" class="link-box"></div>
        <div id="error" class="error"></div>
    </div>
    <script>
        function api(path, body) {
            return fetch(path, {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: body ? JSON.stringify(body) : '{}'
            }).then(function(res) {
                return res.json().then(function(data) {
                    if (!res.ok) { throw new Error(data.error || 'request failed'); }
                    return data;
                });
            });
        }
        function showError(err) { document.getElementById('error').textContent = err.message; }
        function startMeeting() {
            api('/api/v1/meetings/instant').then(function(data) {
                window.location.href = data.url;
            }).catch(showError);
        }
        function createLink() {
            api('/api/v1/meetings/later').then(function(data) {
                var box = document.getElementById('link-box');
                box.textContent = data.url;
                box.style.display = 'block';
            }).catch(showError);
        }
        function joinMeeting() {
            var code = document.getElementById('join-input').value;
            api('/api/v1/meetings/join', { code: code }).then(function(data) {
                window.location.href = data.url;
            }).catch(showError);
        }
        function logout() {
            api('/api/auth/logout').then(function() {
                window.location.href = %q;
            }).catch(showError);
        }
    </script>
</body>
</html>`, html.EscapeString(userName), middleware.LoginPath)

	_ = c.HTML(200, page)
}

func (h *PageHandler) Login(c *drift.Context) {
	errSection := ""
	if errMsg := c.QueryParam("error"); errMsg != "" {
		errSection = fmt.Sprintf(`<p class="error">%s</p>`, html.EscapeString(errMsg))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Sign in - MeetLite</title>
    <style>
        * { box-sizing: border-box; }
        body { font-family: system-ui, -apple-system, sans-serif; background: #f9fafb; color: #374151; margin: 0; padding: 40px 20px; }
        .container { max-width: 360px; margin: 80px auto 0; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 40px 32px; text-align: center; }
        h1 { font-size: 20px; font-weight: 600; color: #111827; margin: 0 0 24px 0; }
        a.provider { display: block; background: #374151; color: #fff; text-decoration: none; border-radius: 6px; padding: 12px 16px; font-size: 15px; font-weight: 500; margin-bottom: 12px; }
        a.provider:hover { background: #1f2937; }
        .error { color: #991b1b; font-size: 14px; margin-top: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Sign in to MeetLite</h1>
        <a class="provider" href="/api/auth/google/consent">Continue with Google</a>
        <a class="provider" href="/api/auth/github/consent">Continue with GitHub</a>%s
    </div>
</body>
</html>`, errSection)

	_ = c.HTML(200, page)
}
