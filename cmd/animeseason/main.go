package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	devMode    bool
)

var rootCmd = &cobra.Command{
	Use:           "animeseason",
	Short:         "按年份/季度浏览新番列表",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./site.yaml", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "开发模式：彩色日志 + 页面自动刷新")
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func newLogger() (*zap.Logger, error) {
	if devMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// exitError 携带进程退出码。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
