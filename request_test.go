package zerohttp

import (
	"errors"
	"testing"
)

func mustText(t *testing.T, name string, f func() (string, error), want string) {
	t.Helper()
	got, err := f()
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if got != want {
		t.Fatalf("%s: got %q, want %q", name, got, want)
	}
}

func TestParseRequestLine(t *testing.T) {
	r := Parse([]byte("GET /get?type=dbs&active=1 HTTP/1.1\r\n\r\n"))
	if r.Method() != MethodGet {
		t.Fatalf("invalid method: %v", r.Method())
	}
	mustText(t, "Target", r.Target, "/get?type=dbs&active=1")
	mustText(t, "Path", r.Path, "/get")
	mustText(t, "Query", r.Query, "type=dbs&active=1")
	mustText(t, "Body", r.Body, "")
	if !r.HeaderDone() {
		t.Fatalf("header block should be done")
	}
	if r.BodyRange().Absent() || r.BodyRange().Len() != 0 {
		t.Fatalf("body should be observed and empty: %+v", r.BodyRange())
	}
}

func TestParseMethod(t *testing.T) {
	cases := []struct {
		data string
		want Method
	}{
		{"GET / HTTP/1.1\r\n\r\n", MethodGet},
		{"POST / HTTP/1.1\r\n\r\n", MethodPost},
		{"PUT / HTTP/1.1\r\n\r\n", MethodUnrecognized},
		{"get / HTTP/1.1\r\n\r\n", MethodUnrecognized},
		{"GETS / HTTP/1.1\r\n\r\n", MethodUnrecognized},
		{"GET", MethodUnrecognized},
	}
	for _, c := range cases {
		if got := Parse([]byte(c.data)).Method(); got != c.want {
			t.Fatalf("%q: got %v, want %v", c.data, got, c.want)
		}
	}
	if MethodPost.String() != "POST" || MethodUnrecognized.String() != "UNRECOGNIZED" {
		t.Fatalf("invalid method names")
	}
}

func TestParseTarget(t *testing.T) {
	r := Parse([]byte("GET /index.html HTTP/1.1\r\n\r\n"))
	mustText(t, "Path", r.Path, "/index.html")
	mustText(t, "Query", r.Query, "")

	// path stops at the first '?', query starts after the last one
	r = Parse([]byte("GET /a?b?c=1 HTTP/1.1\r\n\r\n"))
	mustText(t, "Path", r.Path, "/a")
	mustText(t, "Query", r.Query, "c=1")

	// no second space: the target is not known yet
	r = Parse([]byte("GET /partial"))
	if !r.TargetRange().Absent() {
		t.Fatalf("target should be absent: %+v", r.TargetRange())
	}
	mustText(t, "Target", r.Target, "")
}

func TestPathAndQueryRebuildTarget(t *testing.T) {
	targets := []string{"/get?type=dbs&active=1", "/?", "/x?=", "/a/b/c?d=e&f", "/plain"}
	for _, target := range targets {
		r := Parse([]byte("GET " + target + " HTTP/1.1\r\n\r\n"))
		path, err := r.Path()
		if err != nil {
			t.Fatal(err)
		}
		query, err := r.Query()
		if err != nil {
			t.Fatal(err)
		}
		rebuilt := path
		if len(path) < len(target) {
			rebuilt += "?" + query
		}
		if rebuilt != target {
			t.Fatalf("rebuilt %q, want %q", rebuilt, target)
		}
	}
}

func TestParseBody(t *testing.T) {
	r := Parse([]byte("GET /get?type=dbs&active=1 HTTP/1.1\r\n\r\nHelloIamTheBody"))
	mustText(t, "Body", r.Body, "HelloIamTheBody")
}

func TestParseContentLength(t *testing.T) {
	r := Parse([]byte("GET /get?type=dbs&active=1 HTTP/1.1\r\nContent-Length: 100\r\n\r\n"))
	if r.ContentLength() != 100 {
		t.Fatalf("invalid content length: %v", r.ContentLength())
	}

	r = Parse([]byte("GET / HTTP/1.1\r\ncontent-length: 7\r\n\r\n"))
	if r.ContentLength() != 7 {
		t.Fatalf("invalid content length: %v", r.ContentLength())
	}

	r = Parse([]byte("GET / HTTP/1.1\r\n\r\n"))
	n, err := r.ParseContentLength()
	if n != 0 || err != nil {
		t.Fatalf("missing content length: %v, %v", n, err)
	}

	r = Parse([]byte("GET / HTTP/1.1\r\nContent-Length: abc\r\n\r\n"))
	if r.ContentLength() != 0 {
		t.Fatalf("malformed content length should default to 0: %v", r.ContentLength())
	}
	_, err = r.ParseContentLength()
	if !errors.Is(err, ErrMalformedInteger) {
		t.Fatalf("expected ErrMalformedInteger, got %v", err)
	}
}

func TestParseCookie(t *testing.T) {
	r := Parse([]byte("GET / HTTP/1.1\r\nHost: localhost\r\nCOOKIE: a=1; b=2\r\nAccept: */*\r\n\r\n"))
	mustText(t, "Cookie", r.Cookie, "a=1; b=2")

	// present but empty is not the same as absent
	r = Parse([]byte("GET / HTTP/1.1\r\nCookie: \r\n\r\n"))
	if r.CookieRange().Absent() || r.CookieRange().Len() != 0 {
		t.Fatalf("cookie should be observed and empty: %+v", r.CookieRange())
	}
	r = Parse([]byte("GET / HTTP/1.1\r\n\r\n"))
	if !r.CookieRange().Absent() {
		t.Fatalf("cookie should be absent: %+v", r.CookieRange())
	}
}

func TestParseIgnoredHeaders(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nCook\xffe: a=1\r\nCookie:a=2\r\n Cookie: a=3\r\nX-Cookie: a=4\r\n\r\n")
	r := Parse(data)
	if !r.CookieRange().Absent() {
		t.Fatalf("no header should match cookie: %q", r.CookieBytes())
	}
}

func TestParseContentType(t *testing.T) {
	cases := []struct {
		value     string
		mediaType string
		charset   string
		boundary  string
	}{
		{"text/html; charset=utf-8", "text/html", "utf-8", ""},
		{"text/html; charset=utf-8; boundary=something", "text/html", "utf-8", "something"},
		{"text/html; boundary=something; charset=utf-8", "text/html", "utf-8", "something"},
		{"text/html; CharSet =utf-8", "text/html", "utf-8", ""},
		{"text/html; charset= utf-8", "text/html", " utf-8", ""},
		{"text/html;charset;boundary=a=b", "text/html", "", "a=b"},
		{"multipart/form-data; name=x", "multipart/form-data", "", ""},
		{" text/plain ", " text/plain ", "", ""},
	}
	for _, c := range cases {
		r := Parse([]byte("POST / HTTP/1.1\r\nContent-Length: 6\r\nContent-Type: " + c.value + "\r\n\r\nabcdef"))
		mustText(t, "MediaType", r.MediaType, c.mediaType)
		mustText(t, "Charset", r.Charset, c.charset)
		mustText(t, "Boundary", r.Boundary, c.boundary)
	}
}

func TestParseInvalidEncoding(t *testing.T) {
	r := Parse([]byte("GET /\xff HTTP/1.1\r\n\r\n\xfe"))
	if _, err := r.Target(); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	if _, err := r.Body(); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	if string(r.TargetBytes()) != "/\xff" || string(r.BodyBytes()) != "\xfe" {
		t.Fatalf("raw bytes should be available: %q, %q", r.TargetBytes(), r.BodyBytes())
	}
}

func TestParseTruncated(t *testing.T) {
	full := "POST /form HTTP/1.1\r\nCookie: a=1\r\nContent-Length: 3\r\n\r\nabc"
	for i := 0; i <= len(full); i++ {
		r := Parse([]byte(full[:i]))
		headerEnd := len(full) - 3
		if r.HeaderDone() != (i >= headerEnd) {
			t.Fatalf("prefix %d: HeaderDone = %v", i, r.HeaderDone())
		}
		if r.BodyRange().Observed != r.HeaderDone() {
			t.Fatalf("prefix %d: body observed = %v", i, r.BodyRange().Observed)
		}
		if r.HeaderDone() && r.BodyRange().Start != headerEnd {
			t.Fatalf("prefix %d: body starts at %d", i, r.BodyRange().Start)
		}
	}

	r := Parse([]byte("POST /form HTTP/1.1\r\nCookie: a=1"))
	if !r.CookieRange().Absent() {
		t.Fatalf("unterminated header should be absent")
	}
	r = Parse([]byte("POST /form HTTP/1.1\r\nContent-Length: 3\r\n\r"))
	if r.HeaderDone() || !r.BodyRange().Absent() || r.ContentLength() != 3 {
		t.Fatalf("invalid state for buffer ending at the blank line CR: %v, %+v", r.HeaderDone(), r.BodyRange())
	}
}

func TestRequestReset(t *testing.T) {
	r := NewRequest(nil)
	r.Scan()
	if r.Method() != MethodUnrecognized || r.HeaderDone() {
		t.Fatalf("empty buffer should leave everything unobserved")
	}

	r.Reset([]byte("POST /a HTTP/1.1\r\nCookie: x=1\r\n\r\n"))
	r.Scan()
	mustText(t, "Cookie", r.Cookie, "x=1")

	r.Reset([]byte("GET /b HTTP/1.1\r\n\r\n"))
	r.Scan()
	if r.Method() != MethodGet || !r.CookieRange().Absent() {
		t.Fatalf("Reset should clear previous fields")
	}
	mustText(t, "Target", r.Target, "/b")
}

func TestScanNoAllocs(t *testing.T) {
	data := []byte("POST /get?type=dbs HTTP/1.1\r\nCookie: a=1\r\nContent-Length: 6\r\nContent-Type: text/html; charset=utf-8\r\n\r\nabcdef")
	r := NewRequest(nil)
	allocs := testing.AllocsPerRun(100, func() {
		r.Reset(data)
		r.Scan()
		r.Target()
		r.Path()
		r.Query()
		r.Cookie()
		r.Charset()
		r.Body()
		r.ContentLength()
		CheckData(data)
	})
	if allocs != 0 {
		t.Fatalf("scan and accessors allocated %v times", allocs)
	}
}

var benchData = []byte("POST /joyent/http-parser?a=1 HTTP/1.1\r\n" +
	"Host: github.com\r\n" +
	"DNT: 1\r\n" +
	"Accept-Encoding: gzip, deflate, sdch\r\n" +
	"Accept-Language: ru-RU,ru;q=0.8,en-US;q=0.6,en;q=0.4\r\n" +
	"User-Agent: Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/39.0.2171.65 Safari/537.36\r\n" +
	"Accept: text/html,application/xhtml+xml,application/xml;q=0.9," +
	"image/webp,*/*;q=0.8\r\n" +
	"Referer: https://github.com/joyent/http-parser\r\n" +
	"Cookie: session=abc; theme=dark\r\n" +
	"Content-Type: application/x-www-form-urlencoded; charset=utf-8\r\n" +
	"Content-Length: 11\r\n" +
	"Cache-Control: max-age=0\r\n\r\nhello=world")

func BenchmarkScan(b *testing.B) {
	r := NewRequest(nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(benchData)
		r.Scan()
	}
}

func BenchmarkCheckData(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if CheckData(benchData) != 0 {
			b.Fatal("body should be complete")
		}
	}
}
