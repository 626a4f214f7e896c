package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/timerzz/webdl/dl"
	"github.com/urfave/cli/v2"
)

func main() {
	var (
		c     = dl.DefaultConfig()
		quiet bool
		debug bool
	)
	c.Dir, _ = os.Getwd()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "webdl",
		Usage: "下载单个 http(s) 文件，失败自动重试",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "u",
				Aliases:     []string{"url"},
				Usage:       "要下载的url",
				Required:    true,
				Destination: &c.URL,
			},
			&cli.StringFlag{
				Name:        "d",
				Aliases:     []string{"dir"},
				Usage:       "设置保存的目录，不存在时自动创建",
				Value:       c.Dir,
				Destination: &c.Dir,
			},
			&cli.StringFlag{
				Name:        "f",
				Aliases:     []string{"filename"},
				Usage:       "设置保存的文件名称，默认取url路径的最后一段",
				Destination: &c.FileName,
			},
			&cli.IntFlag{
				Name:    "t",
				Aliases: []string{"timeout"},
				Value:   int(dl.DefaultTimeout / time.Second),
				Usage:   "连接和读取的超时时间(秒)，0 表示不限制",
				Action: func(_ *cli.Context, i int) error {
					c.Timeout = time.Second * time.Duration(i)
					return nil
				},
			},
			&cli.IntFlag{
				Name:        "r",
				Aliases:     []string{"retry"},
				Value:       dl.DefaultRetries,
				Usage:       "设置重试次数",
				Destination: &c.RetryCount,
			},
			&cli.Float64Flag{
				Name:        "b",
				Aliases:     []string{"backoff"},
				Value:       dl.DefaultBackoffFactor,
				Usage:       "重试退避系数，第一次重试立即进行，之后第n次重试前等待 backoff*2^(n-1) 秒",
				Destination: &c.BackoffFactor,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Value:       dl.DefaultProgressInterval,
				Usage:       "进度条刷新间隔",
				Destination: &c.ProgressInterval,
			},
			&cli.BoolFlag{
				Name:        "q",
				Aliases:     []string{"quiet"},
				Usage:       "不显示进度条",
				Destination: &quiet,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "输出调试日志",
				Destination: &debug,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
				c.Debug = true
			}
			if quiet {
				c.Output = io.Discard
			}
			c.Logger = logrus.StandardLogger()

			ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err := dl.Download(ctx, c)
			return err
		},
	}
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}
