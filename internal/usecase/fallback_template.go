package usecase

import (
	"bytes"
	"log/slog"
	"text/template"
	"time"

	"github.com/user/stylegen-service/internal/entity"
)

// FallbackTemplate builds a deterministic landing page directly from a
// style profile, without calling the generation provider. Used whenever
// generation retries are exhausted so the caller always receives
// renderable HTML.
func FallbackTemplate(profile *entity.StyleProfile) string {
	if profile == nil {
		profile = entity.DefaultStyleProfile()
	}

	data := fallbackData{
		Primary:    pick(profile.Colors, 0, "#6366f1"),
		Accent:     pick(profile.Colors, 1, "#8b5cf6"),
		Dark:       pick(profile.Colors, 2, "#0f172a"),
		Light:      pick(profile.Colors, 3, "#f8fafc"),
		Font:       pick(profile.Fonts, 0, "Inter"),
		Logo:       profile.Logo,
		HeroImage:  pick(profile.Images, 0, ""),
		Headline:   pick(profile.Headings, 0, "Welcome"),
		Subheading: profile.MetaDescription,
		Year:       time.Now().Year(),
	}
	if data.Subheading == "" {
		data.Subheading = "Everything you need, in one place."
	}

	var buf bytes.Buffer
	if err := fallbackTmpl.Execute(&buf, data); err != nil {
		// The template is static and the data plain strings; execution
		// cannot fail in practice, but never return an empty page.
		slog.Error("Fallback template execution failed", "error", err)
		return "<!DOCTYPE html><html><body><h1>" + data.Headline + "</h1></body></html>"
	}
	return buf.String()
}

func pick(list []string, idx int, fallback string) string {
	if idx < len(list) {
		return list[idx]
	}
	return fallback
}

type fallbackData struct {
	Primary    string
	Accent     string
	Dark       string
	Light      string
	Font       string
	Logo       string
	HeroImage  string
	Headline   string
	Subheading string
	Year       int
}

var fallbackTmpl = template.Must(template.New("fallback").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Headline}}</title>
<style>
  :root {
    --primary: {{.Primary}};
    --accent: {{.Accent}};
    --dark: {{.Dark}};
    --light: {{.Light}};
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: '{{.Font}}', system-ui, sans-serif; color: var(--dark); background: var(--light); }
  header { display: flex; align-items: center; padding: 1.25rem 2rem; }
  header img { height: 40px; }
  .hero { text-align: center; padding: 6rem 2rem; background: linear-gradient(135deg, var(--primary), var(--accent)); color: var(--light); }
  .hero h1 { font-size: 2.75rem; margin-bottom: 1rem; }
  .hero p { font-size: 1.25rem; opacity: 0.9; max-width: 640px; margin: 0 auto 2rem; }
  .hero a { display: inline-block; padding: 0.875rem 2rem; background: var(--light); color: var(--primary); border-radius: 0.5rem; font-weight: 600; text-decoration: none; }
  .hero a:hover { opacity: 0.85; }
  .hero img { max-width: 100%; border-radius: 0.75rem; margin-top: 3rem; }
  .features { display: grid; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); gap: 2rem; padding: 4rem 2rem; max-width: 1200px; margin: 0 auto; }
  .features article { padding: 2rem; background: #fff; border-radius: 0.75rem; box-shadow: 0 2px 12px rgba(0,0,0,0.06); }
  .features h2 { margin-bottom: 0.75rem; color: var(--primary); }
  .cta { text-align: center; padding: 4rem 2rem; }
  .cta a { display: inline-block; padding: 0.875rem 2rem; background: var(--primary); color: var(--light); border-radius: 0.5rem; font-weight: 600; text-decoration: none; }
  .cta a:hover { background: var(--accent); }
  footer { text-align: center; padding: 2rem; color: var(--dark); opacity: 0.7; }
</style>
</head>
<body>
<header>
{{if .Logo}}<img src="{{.Logo}}" alt="Logo">{{else}}<strong>{{.Headline}}</strong>{{end}}
</header>
<main>
<section class="hero">
  <h1>{{.Headline}}</h1>
  <p>{{.Subheading}}</p>
  <a href="#get-started">Get Started</a>
{{if .HeroImage}}  <img src="{{.HeroImage}}" alt="{{.Headline}}">{{end}}
</section>
<section class="features">
  <article><h2>Fast</h2><p>Up and running in minutes, not weeks.</p></article>
  <article><h2>Reliable</h2><p>Built to stay out of your way and keep working.</p></article>
  <article><h2>Flexible</h2><p>Adapts to your workflow, not the other way around.</p></article>
</section>
<section class="cta" id="get-started">
  <h2>Ready to get started?</h2>
  <p>Join today and see the difference.</p>
  <a href="#">Start Now</a>
</section>
</main>
<footer>&copy; {{.Year}} All rights reserved.</footer>
</body>
</html>`))
