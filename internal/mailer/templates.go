package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const layout = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: 'Inter', -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: {{.Color}}; color: white; padding: 30px; text-align: center; border-radius: 12px 12px 0 0; }
  .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 12px 12px; }
  .cta-button { display: inline-block; background-color: #4f46e5; color: #ffffff !important; text-decoration: none; padding: 14px 28px; border-radius: 8px; font-weight: 600; margin: 25px 0; }
  .blog-box { background: #f9fafb; border: 1px solid #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0; font-style: italic; color: #4b5563; }
  .reason-box { background: #fef2f2; border: 1px solid #fecaca; color: #b91c1c; padding: 15px; border-radius: 8px; margin: 20px 0; }
  .footer { padding: 20px; text-align: center; color: #6b7280; font-size: 13px; border-top: 1px solid #f3f4f6; margin-top: 20px; }
</style>
</head>
<body>
  <div class="header"><h1>{{.Heading}}</h1></div>
  <div class="content">
    {{template "body" .}}
    <div class="footer"><p>&copy; {{.Year}} {{.Site}}. All rights reserved.</p></div>
  </div>
</body>
</html>`

const creatorApprovedBody = `{{define "body"}}
<h2>Congratulations, {{.Name}}!</h2>
<p>Your application to become a <strong>{{.Site}} Creator</strong> has been reviewed and <strong>approved</strong> by our editorial team.</p>
<p>You can now draft, format and publish your own articles and manage your content portfolio.</p>
<div style="text-align: center;"><a href="{{.Link}}" class="cta-button">Go to Creator Dashboard</a></div>
<p>Best regards,<br><strong>The {{.Site}} Admin Team</strong></p>
{{end}}`

const creatorRejectedBody = `{{define "body"}}
<h2>Hello {{.Name}},</h2>
<p>Thank you for your interest in becoming a Creator on {{.Site}}.</p>
<p>After reviewing your submission, we have decided <strong>not to move forward with your Creator application at this time.</strong></p>
<p>You can keep reading and saving stories as a regular user, and you are welcome to apply again in the future.</p>
<p>Best regards,<br><strong>The {{.Site}} Admin Team</strong></p>
{{end}}`

const postApprovedBody = `{{define "body"}}
<h2>Great news, {{.Name}}!</h2>
<p>Your blog post has been <strong>approved and published</strong> on {{.Site}}.</p>
<div class="blog-box">"{{.Title}}"</div>
<div style="text-align: center;"><a href="{{.Link}}" class="cta-button">View Live Article</a></div>
<p>Best regards,<br><strong>The {{.Site}} Editorial Team</strong></p>
{{end}}`

const postRejectedBody = `{{define "body"}}
<h2>Hello {{.Name}},</h2>
<p>Our editorial team has reviewed your submission:</p>
<div class="blog-box">"{{.Title}}"</div>
<p>Unfortunately we are unable to publish this article at this time. The editorial team left the following feedback:</p>
<div class="reason-box"><strong>Editor's Note:</strong><br>{{.Reason}}</div>
<p>You can update the article and resubmit it for review from your dashboard.</p>
<div style="text-align: center;"><a href="{{.Link}}" class="cta-button">Go to Dashboard Editor</a></div>
<p>Best regards,<br><strong>The {{.Site}} Editorial Team</strong></p>
{{end}}`

const fallbackRejectionNote = "Please ensure all fields, including category tags and featured images, are properly completed and align with our platform quality standards."

type templateData struct {
	Site    string
	Heading string
	Color   template.CSS
	Year    int
	Name    string
	Title   string
	Reason  string
	Link    string
}

// Templates renders the notification emails.
type Templates struct {
	site            string
	appURL          string
	creatorApproved *template.Template
	creatorRejected *template.Template
	postApproved    *template.Template
	postRejected    *template.Template
}

func NewTemplates(site, appURL string) *Templates {
	build := func(body string) *template.Template {
		return template.Must(template.Must(template.New("layout").Parse(layout)).Parse(body))
	}
	return &Templates{
		site:            site,
		appURL:          appURL,
		creatorApproved: build(creatorApprovedBody),
		creatorRejected: build(creatorRejectedBody),
		postApproved:    build(postApprovedBody),
		postRejected:    build(postRejectedBody),
	}
}

func (t *Templates) render(tpl *template.Template, data templateData) (string, error) {
	data.Site = t.site
	data.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

func (t *Templates) CreatorApproved(name string) (Message, error) {
	html, err := t.render(t.creatorApproved, templateData{
		Heading: "Welcome to " + t.site + " Creators",
		Color:   "linear-gradient(135deg, #4f46e5 0%, #7c3aed 100%)",
		Name:    name,
		Link:    t.appURL + "/dashboard",
	})
	return Message{ToName: name, Subject: "Application Approved: Welcome to " + t.site + " Creators!", HTML: html}, err
}

func (t *Templates) CreatorRejected(name string) (Message, error) {
	html, err := t.render(t.creatorRejected, templateData{
		Heading: t.site + " Creator Application Update",
		Color:   "#1f2937",
		Name:    name,
	})
	return Message{ToName: name, Subject: "Update on your " + t.site + " Creator Application", HTML: html}, err
}

// PostApproved links to postPath on the public site.
func (t *Templates) PostApproved(name, title, postPath string) (Message, error) {
	html, err := t.render(t.postApproved, templateData{
		Heading: "Your Blog is Live!",
		Color:   "linear-gradient(135deg, #10b981 0%, #059669 100%)",
		Name:    name,
		Title:   title,
		Link:    t.appURL + postPath,
	})
	return Message{ToName: name, Subject: "Your blog post has been approved!", HTML: html}, err
}

func (t *Templates) PostRejected(name, title, reason string) (Message, error) {
	if reason == "" {
		reason = fallbackRejectionNote
	}
	html, err := t.render(t.postRejected, templateData{
		Heading: "Update on your Submission",
		Color:   "#ef4444",
		Name:    name,
		Title:   title,
		Reason:  reason,
		Link:    t.appURL + "/dashboard",
	})
	return Message{ToName: name, Subject: "Update on your " + t.site + " submission", HTML: html}, err
}
