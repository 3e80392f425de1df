// Command apierrors-demo runs a small Gin service whose routes raise each
// error taxonomy, useful for poking at the formatter's output by hand:
//
//	apierrors-demo --port 8888 --camelize
//	curl localhost:8888/items -d '{}'
//
// The `config` subcommand prints the effective formatter configuration as
// YAML.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/apierrors/apierrors"
	"github.com/apierrors/apierrors/adapters/apierrorsgin"
	_ "github.com/apierrors/apierrors/formats/cbor"
)

type item struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func addGlobalFlag(flags *pflag.FlagSet, name, short, description string, defaultValue any) {
	viper.SetDefault(name, defaultValue)
	switch v := defaultValue.(type) {
	case bool:
		flags.BoolP(name, short, viper.GetBool(name), description)
	case int:
		flags.IntP(name, short, viper.GetInt(name), description)
	default:
		flags.StringP(name, short, fmt.Sprintf("%v", v), description)
	}
	_ = viper.BindPFlag(name, flags.Lookup(name))
}

func newFormatter() (*apierrors.Formatter, error) {
	cfg := apierrors.DefaultConfig()
	cfg.Camelize = viper.GetBool("camelize")
	return apierrors.New(cfg)
}

func newRouter(f *apierrors.Formatter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), apierrorsgin.Middleware(f))
	r.NoRoute(apierrorsgin.NoRoute(f))
	r.NoMethod(apierrorsgin.NoMethod(f))

	r.POST("/items", func(c *gin.Context) {
		var it item
		if err := c.ShouldBindJSON(&it); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, it)
	})

	r.GET("/secret", func(c *gin.Context) {
		apierrorsgin.Abort(f, c, apierrors.NotAuthenticated())
	})

	r.GET("/forbidden", func(c *gin.Context) {
		apierrorsgin.Abort(f, c, apierrors.PermissionDenied())
	})

	r.GET("/oops", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("database exploded"))
	})

	return r
}

func main() {
	viper.SetEnvPrefix("APIERRORS_DEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root := &cobra.Command{
		Use: filepath.Base(os.Args[0]),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFormatter()
			if err != nil {
				return err
			}
			addr := fmt.Sprintf("%s:%d", viper.GetString("host"), viper.GetInt("port"))
			fmt.Printf("Listening on %s...\n", addr)
			return newRouter(f).Run(addr)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective formatter configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFormatter()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(f.Config())
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	})

	addGlobalFlag(root.PersistentFlags(), "host", "", "Hostname to listen on", "0.0.0.0")
	addGlobalFlag(root.PersistentFlags(), "port", "p", "Port to listen on", 8888)
	addGlobalFlag(root.PersistentFlags(), "camelize", "c", "Camelize field names in error output", false)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
