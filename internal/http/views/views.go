// views рендерит HTML-страницы сайта из встроенных шаблонов.
// Каждая страница — layout.html + свой файл с блоком "content";
// шаблоны разбираются один раз при старте.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "layout.html"

// Имена страниц.
const (
	PageHome         = "home.html"
	PageLogin        = "login.html"
	PageRegister     = "register.html"
	PageReservation  = "reservation.html"
	PagePayment      = "payment.html"
	PageConfirmation = "confirmation.html"
	PageDashboard    = "dashboard.html"
)

// Redirect — отложенный переход, привязанный к странице: уход со страницы его отменяет.
type Redirect struct {
	After time.Duration
	URL   string
}

// Seconds — задержка для <meta http-equiv="refresh"> (целые секунды, с округлением вверх).
func (r Redirect) Seconds() int { return int(math.Ceil(r.After.Seconds())) }

// Millis — точная задержка для setTimeout.
func (r Redirect) Millis() int64 { return r.After.Milliseconds() }

// Page — общие данные layout и данные конкретной страницы.
type Page struct {
	Title    string
	Session  session.Session
	CSRF     template.HTML
	Redirect *Redirect
	Data     any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": models.FormatAmount,
	"phone": models.FormatPhone,
	"year":  func() int { return time.Now().Year() },
}

// New разбирает все страницы; ошибка шаблона — ошибка старта.
func New() (*Renderer, error) {
	const op = "internal/http/views/New"

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := path.Base(f)
		if name == layoutFile {
			continue
		}

		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/"+layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render пишет страницу name со статусом status. Страница сначала рендерится
// в буфер: ошибка шаблона не оставляет полуотданный ответ.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("views: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)

	return err
}

// Pages — имена разобранных страниц (для тестов и проверки старта).
func (v *Renderer) Pages() []string {
	out := make([]string, 0, len(v.pages))
	for name := range v.pages {
		out = append(out, strings.TrimSuffix(name, ".html"))
	}

	return out
}
