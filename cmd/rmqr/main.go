// Command rmqr encodes text as a QR, Micro QR or rMQR code.
package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/image/colornames"

	"github.com/unixdj/rmqr"
	"github.com/unixdj/rmqr/coding"
	"github.com/unixdj/rmqr/split"
)

var g = struct {
	opts   rmqr.Options // encoding options
	style  rmqr.Style   // rendering style
	border int          // quiet zone, -1 for default
	fn     string       // filename
	format int          // output file format
	bg, fg rgba         // colour
	colSet bool         // colour set
	micro  bool         // Micro QR
	rect   bool         // rMQR
	latin1 bool         // Latin-1 byte mode
	sjis   bool         // Shift JIS byte mode
	debug  bool         // debug logging
	ver    version      // code version
}{
	bg: rgba{0xff, 0xff, 0xff, 0xff},
	fg: rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR, Micro QR and rMQR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: QR code, UTF-8 byte mode, kanji mode
disabled, smallest version.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func printVersion() {
	fmt.Println(`rmqr version 0.1.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

type rgba struct {
	R, G, B, A uint8
}

func (c *rgba) String() string {
	if *c == (rgba{0x00, 0x00, 0x00, 0xff}) {
		return "black"
	} else if *c == (rgba{0xff, 0xff, 0xff, 0xff}) {
		return "white"
	} else if c.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	} else {
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
}

func (c *rgba) Set(s string, _ getopt.Option) error {
	g.colSet = true
	if rgb, ok := colornames.Map[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		*c = rgba(rgb)
		return nil
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	switch len(s) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		var nn uint64
		for i := 0; i < 4; i++ {
			nn <<= 8
			nn |= n >> 12 & 0xf * 0x11
			n <<= 4
		}
		n = nn
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return fmt.Errorf("%q: bad colour spec", s)
	}
	c.R, c.G, c.B, c.A = uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)
	return nil
}

// version is a code version flag.
type version coding.Version

func (v *version) String() string {
	if *v == 0 {
		return ""
	}
	return coding.Version(*v).String()
}

func (v *version) Set(s string, _ getopt.Option) error {
	ver, err := coding.ParseVersion(
		strings.Replace(strings.ToUpper(s), "X", "x", 1))
	if err != nil {
		return fmt.Errorf("%q: bad version", s)
	}
	*v = version(ver)
	return nil
}

var formats = []string{
	"png", "pngi", "svg", "svgi", "pbm", "pbmi", "eps", "epsi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*rmqr.Code, io.Writer) error{
	(*rmqr.Code).EncodePNG,
	(*rmqr.Code).EncodeSVG,
	(*rmqr.Code).EncodePBM,
	eps,
	func(c *rmqr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(printVersion), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`only for types png[i], svg[i] and eps[i]`, "RGB[A]|name")
	getopt.Flag(&g.micro, 'M', "encode a Micro QR code")
	getopt.Flag(&g.rect, 'R', "encode an rMQR code")
	getopt.Flag(&g.opts.Kanji, 'K', "enable kanji mode")
	getopt.Flag(&g.latin1, '1', "convert byte mode segments to Latin-1")
	getopt.Flag(&g.sjis, 'k', "convert byte mode segments to Shift JIS")
	getopt.Flag(&g.opts.Parallel, 'p', "evaluate masks in parallel")
	getopt.Flag(&g.debug, 'd', "log encoding details to standard error")
	round := getopt.Bool('r', "draw round modules; "+
		"only for types png[i] and svg[i]")
	getopt.Flag(&g.border, 'm', `quiet zone modules [4 (2 for Micro `+
		`and rMQR)]`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.ver, 'v', `code version: 1 to 40, M1 to M4 or `+
		`R7x43 to R17x139; overrides -M and -R`, "version")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest "+
			"[l (m for rMQR)]", "l|m|q|h")
	strategy := getopt.Enum('s', []string{"area", "width", "height"},
		"area", "rMQR version selection: smallest area, width or height",
		"area|width|height")
	scale := getopt.Unsigned('S', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps[i]: points) per module; `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	width := getopt.Unsigned('w', 0,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 0, Max: 1 << 16}),
		`image width in pixels; overrides -S for types png[i] `+
			`and svg[i]`, "width")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if !getopt.IsSet('m') {
		g.border = -1
	}
	if g.micro && g.rect {
		fmt.Fprintln(os.Stderr, "-M and -R are incompatible")
		usage()
	}
	if g.latin1 && g.sjis {
		fmt.Fprintln(os.Stderr, "-1 and -k are incompatible")
		usage()
	}
	switch {
	case g.micro:
		g.opts.Kind = rmqr.Micro
	case g.rect:
		g.opts.Kind = rmqr.RMQR
	}
	g.opts.Version = coding.Version(g.ver)
	kind := g.opts.Kind
	if g.ver != 0 {
		kind = g.opts.Version.Kind()
	}
	g.opts.Level = rmqr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if !getopt.IsSet('l') && kind == rmqr.RMQR {
		g.opts.Level = rmqr.M
	}
	g.opts.Strategy, _ = split.ParseStrategy(*strategy)
	switch {
	case g.latin1:
		g.opts.Charset = rmqr.Latin1
	case g.sjis:
		g.opts.Charset = rmqr.ShiftJIS
	}
	if g.debug {
		g.opts.Logger = slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	g.style.Scale = int(*scale)
	g.style.Size = int(*width)
	if *round {
		g.style.Shape = rmqr.Round
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.style.Reverse = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if g.colSet {
		g.style.Background = color.NRGBA(g.bg)
		g.style.Foreground = color.NRGBA(g.fg)
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	c, err := rmqr.Encode(s, &g.opts)
	if err != nil {
		log.Fatalln(err)
	}
	write(c)
}

func write(c *rmqr.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	qz := c.QuietZone
	c.Style = g.style
	c.QuietZone = qz
	if g.border >= 0 {
		c.QuietZone = g.border
	}
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func eps(c *rmqr.Code, w io.Writer) error {
	const midx, midy = 306, 396
	const maxx, maxy = 612, 792
	wid, hgt := c.Width(), c.Height()
	scale := c.Scale
	bord := c.QuietZone
	xorig := (maxx - (wid+2*bord)*scale) / 2
	yorig := (maxy - (hgt+2*bord)*scale) / 2
	title := map[rmqr.Kind]string{
		rmqr.Standard: "QR Code",
		rmqr.Micro:    "Micro QR Code",
		rmqr.RMQR:     "rMQR Code",
	}[c.Kind()]
	b := &bytes.Buffer{}
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: rMQR https://github.com/unixdj/rmqr
%%%%Title: %s
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		title, xorig-1, yorig-1, maxx-xorig, maxy-yorig,
		midx-float64(wid*scale)/2, midy+float64((hgt-1)*scale)/2-1,
		scale)
	if rev := c.Reverse; rev || g.colSet {
		bg, fg := g.bg, g.fg
		if rev {
			bg, fg = fg, bg
		}
		fmt.Fprintf(b, `%.3g %.3g %.3g setrgbcolor
%d %g %d %d rectfill
%.3g %.3g %.3g setrgbcolor
`,
			float64(bg.R)/0xff, float64(bg.G)/0xff, float64(bg.B)/0xff,
			-bord, -0.5-float64(bord), wid+2*bord, hgt+2*bord,
			float64(fg.R)/0xff, float64(fg.G)/0xff, float64(fg.B)/0xff)
	}
	fmt.Fprintln(b, "newpath 0 0 moveto")
	for y := 0; y < hgt; y++ {
		for x := 0; x < wid; {
			s := x
			for x < wid && !c.Black(x, y) {
				x++
			}
			if x == wid {
				break
			}
			b0 := x
			for x < wid && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-b0, b0-s)
		}
		fmt.Fprintln(b, "r")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	_, err := b.WriteTo(w)
	return err
}

func ascii(c *rmqr.Code, w io.Writer) error {
	wid, hgt := c.Width(), c.Height()
	bord := c.QuietZone
	pw := wid + 2*bord
	b := make([]byte, 0, (pw*2+1)*(hgt+2*bord))
	for y := -bord; y < hgt+bord; y++ {
		for x := -bord; x < wid+bord; x++ {
			p := " "
			if c.Black(x, y) != c.Reverse {
				p = "#"
			}
			b = append(b, p+p...)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
