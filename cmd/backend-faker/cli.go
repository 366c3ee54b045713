package main

import (
	"github.com/spf13/cobra"

	"github.com/raywall/backend-faker/pkg/config"
)

// flagKeys liga cada flag à chave correspondente na configuração.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"port", "port"},
	{"delay", "delay"},
	{"schema", "schema"},
	{"cors-domain", "cors_domain"},
	{"cors-port", "cors_port"},
	{"silent", "silent"},
	{"seed", "seed"},
	{"cache", "cache.backend"},
	{"redis-addr", "cache.redis.addr"},
	{"log-level", "logging.level"},
	{"log-format", "logging.format"},
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "backend-faker",
		Short:        "Servidor de API fake a partir de um schema declarativo",
		Version:      "1.0.0",
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), buildOptions(cmd))
		},
	}

	bindFlags(root)
	root.AddCommand(newValidateCmd())

	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Valida o schema e lista os campos mal definidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validate(cmd.Context(), buildOptions(cmd), cmd.OutOrStdout())
		},
	}
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Arquivo YAML de configuração")
	flags.IntP("port", "p", 2000, "Porta HTTP")
	flags.IntP("delay", "d", 0, "Atraso máximo aleatório por requisição (ms)")
	flags.StringP("schema", "b", "backend.json", "Schema das rotas (arquivo, s3:// ou dynamodb://)")
	flags.String("cors-domain", "", "Domínio liberado no CORS (padrão *)")
	flags.Int("cors-port", 0, "Porta do domínio liberado no CORS")
	flags.BoolP("silent", "s", false, "Não loga cada requisição")
	flags.Uint64("seed", 0, "Semente dos geradores (0 = aleatória)")
	flags.String("cache", "memory", "Backend do cache de respostas (memory|redis)")
	flags.String("redis-addr", "", "Endereço do Redis quando --cache=redis")
	flags.String("log-level", "info", "Nível de log (debug|info|warn|error)")
	flags.String("log-format", "console", "Formato de log (json|console)")
}

// buildOptions repassa apenas as flags informadas, para não sobrescrever
// arquivo e ambiente com os defaults das flags.
func buildOptions(cmd *cobra.Command) config.Options {
	flags := cmd.Flags()
	opts := config.Options{Flags: map[string]any{}}
	opts.File, _ = flags.GetString("config")

	for _, fk := range flagKeys {
		f := flags.Lookup(fk.flag)
		if f == nil || !f.Changed {
			continue
		}
		opts.Flags[fk.key] = f.Value.String()
	}
	return opts
}
