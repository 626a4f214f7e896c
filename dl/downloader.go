package dl

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/timerzz/nio"
	"github.com/timerzz/webdl/pkg/progressbar"
	"github.com/timerzz/webdl/pkg/utils"
)

// Result describes a finished download.
type Result struct {
	Path      string
	Size      int64 // bytes written
	Total     int64 // declared size or UnknownSize
	ChunkSize int
	Elapsed   time.Duration
}

// plan is fixed once the response headers are in and is passed by value to
// the transfer loop.
type plan struct {
	url       string
	total     int64
	chunkSize int
	fileName  string
	path      string
}

// DownLoader fetches one url into one file. Each DownLoader owns its http
// client, run several of them for parallel downloads.
type DownLoader struct {
	cfg    Config
	client *req.Client //http客户端
	log    logrus.FieldLogger
}

func New(cfg Config) (*DownLoader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	client := newSession(cfg.retryPolicy(), cfg.Timeout, cfg.Logger)
	if cfg.Debug {
		client = client.EnableDebugLog()
	}
	return &DownLoader{
		cfg:    cfg,
		client: client,
		log:    cfg.Logger.WithField("url", cfg.URL),
	}, nil
}

// Download is a shortcut for New(cfg) followed by Download(ctx).
func Download(ctx context.Context, cfg Config) (*Result, error) {
	d, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return d.Download(ctx)
}

// Download requests the url, streams the body to Dir/FileName and returns
// once the file is complete. A failed download may leave a truncated file.
func (d *DownLoader) Download(ctx context.Context) (*Result, error) {
	d.log.Infof("starting download of %s", d.cfg.URL)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	resp, err := d.probe(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	p, err := d.resolve(resp)
	if err != nil {
		return nil, err
	}

	if p.total >= 0 {
		d.log.Infof("total size: %s", utils.MiBFormat(p.total))
	} else {
		d.log.Info("total size unknown (no Content-Length)")
	}
	d.log.Infof("chunk size: %d bytes", p.chunkSize)

	if err = os.MkdirAll(d.cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create directory %s", d.cfg.Dir)
	}

	wd := startWatchdog(d.cfg.Timeout, cancel)
	defer wd.stop()

	res, err := d.transfer(ctx, resp.Body, p, wd)
	if err != nil {
		return nil, err
	}
	d.log.WithField("path", res.Path).Infof("download finished in %s", utils.ElapsedFormat(res.Elapsed))
	return res, nil
}

// probe sends the GET and checks the status. The body is left unread.
func (d *DownLoader) probe(ctx context.Context) (*req.Response, error) {
	resp, err := d.client.R().SetContext(ctx).Get(d.cfg.URL)
	if err != nil {
		closeResponse(resp)
		return nil, &DownloadError{URL: d.cfg.URL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		closeResponse(resp)
		return nil, &DownloadError{URL: d.cfg.URL, Err: errors.Wrap(ErrBadStatus, resp.Status)}
	}
	return resp, nil
}

func (d *DownLoader) resolve(resp *req.Response) (plan, error) {
	total := UnknownSize
	if resp.ContentLength >= 0 {
		total = resp.ContentLength
	}

	name := d.cfg.FileName
	if name == "" {
		name = utils.FileNameFromURL(d.cfg.URL)
	}
	if name == "" {
		name = utils.FileNameFromDisposition(resp.Header.Get("Content-Disposition"))
	}
	if name == "" {
		return plan{}, &DownloadError{URL: d.cfg.URL, Err: ErrNoFileName}
	}

	return plan{
		url:       d.cfg.URL,
		total:     total,
		chunkSize: ChunkSize(total),
		fileName:  name,
		path:      filepath.Join(d.cfg.Dir, name),
	}, nil
}

func (d *DownLoader) transfer(ctx context.Context, body io.Reader, p plan, wd *watchdog) (res *Result, err error) {
	f, err := os.Create(p.path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", p.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			res, err = nil, errors.Wrapf(cerr, "close %s", p.path)
		}
	}()

	var (
		start   time.Time
		elapsed time.Duration
	)
	bar := progressbar.New(
		progressbar.WithTitle("downloading"),
		progressbar.WithTotal(p.total),
		progressbar.WithOutput(d.cfg.Output),
		progressbar.WithInterval(d.cfg.ProgressInterval),
		progressbar.WithFinishHook(func() { elapsed = time.Since(start) }),
	)
	defer bar.Finish()

	// bar counts what actually reached the file
	var w io.Writer = nio.NWriter(f, bar.Add)
	buf := make([]byte, p.chunkSize)

	start = time.Now()
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			// a slow disk or terminal is not a stalled connection
			wd.stop()
			if _, werr := w.Write(buf[:n]); werr != nil {
				return nil, errors.Wrapf(werr, "write %s", p.path)
			}
			wd.kick()
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			if cause := context.Cause(ctx); cause != nil {
				rerr = cause
			}
			return nil, &DownloadError{URL: p.url, Err: errors.WithMessage(rerr, "read body")}
		}
	}
	wd.stop()
	bar.Finish()

	written := bar.Cur()
	if p.total >= 0 && written < p.total {
		return nil, &DownloadError{URL: p.url, Err: errors.Wrapf(ErrShortBody, "got %d of %d bytes", written, p.total)}
	}

	return &Result{
		Path:      p.path,
		Size:      written,
		Total:     p.total,
		ChunkSize: p.chunkSize,
		Elapsed:   elapsed,
	}, nil
}

func closeResponse(resp *req.Response) {
	if resp != nil && resp.Response != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

// watchdog cancels the request when the body stalls for longer than timeout.
// A nil watchdog is valid and does nothing.
type watchdog struct {
	timer   *time.Timer
	timeout time.Duration
}

func startWatchdog(timeout time.Duration, cancel context.CancelCauseFunc) *watchdog {
	if timeout <= 0 {
		return nil
	}
	return &watchdog{
		timer:   time.AfterFunc(timeout, func() { cancel(ErrReadTimeout) }),
		timeout: timeout,
	}
}

func (w *watchdog) kick() {
	if w != nil {
		w.timer.Reset(w.timeout)
	}
}

func (w *watchdog) stop() {
	if w != nil {
		w.timer.Stop()
	}
}
