package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"autocotizar/go_backend/internal/app/batch"
	"autocotizar/go_backend/internal/app/config"
	"autocotizar/go_backend/internal/domain/quote"
	"autocotizar/go_backend/internal/infra/register"
	"autocotizar/go_backend/internal/infra/sheet"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autocotizar",
		Short:         "Cotiza listas de productos contra la lista de precios vigente",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.String("precios", config.DefaultCatalogPath, "ruta al archivo Excel o CSV con la lista de precios")
	pf.String("registro", "cotizaciones_registro.csv", "ruta del registro CSV de cotizaciones")
	pf.Float64("umbral", 0.6, "similitud mínima para aceptar un código aproximado (0-1]")
	pf.String("config", "", "archivo de configuración opcional (yaml, toml o json)")

	root.AddCommand(newServeCmd(), newQuoteCmd(), newRegisterCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP con el formulario de carga",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Int("port", config.DefaultPort, "puerto en el que escuchar")
	cmd.Flags().String("fuentes", "", "directorio con DejaVuSans.ttf y DejaVuSans-Bold.ttf")
	return cmd
}

func newQuoteCmd() *cobra.Command {
	var (
		client     string
		itemsPath  string
		images     map[string]string
		outputPath string
		noRegister bool
	)
	cmd := &cobra.Command{
		Use:   "cotizar",
		Short: "Genera una cotización en PDF y la agrega al registro",
		Example: "  autocotizar cotizar --cliente \"Colegio Central\" --items pedido.xlsx \\\n" +
			"    --imagen A1=fotos/a1.jpg --salida cotizacion.pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			rows, err := sheet.Open(itemsPath)
			if err != nil {
				return &quote.UploadFormatError{Reason: "cannot read " + itemsPath, Err: err}
			}
			items, err := quote.ParseRequestedLines(rows)
			if err != nil {
				return err
			}
			res, err := newIssuer(cfg).Issue(cmd.Context(), batch.Request{
				Client:       client,
				Items:        items,
				Images:       images,
				OutputPath:   outputPath,
				SkipRegister: noRegister,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "cliente", "", "nombre del cliente o empresa")
	cmd.Flags().StringVar(&itemsPath, "items", "", "archivo xlsx/csv con código y cantidad")
	cmd.Flags().StringToStringVar(&images, "imagen", nil, "imagen por código, CODIGO=ruta (repetible)")
	cmd.Flags().StringVar(&outputPath, "salida", "", "ruta del PDF (por defecto cotizacion_<cliente>_<fecha>.pdf)")
	cmd.Flags().BoolVar(&noRegister, "sin-registro", false, "no agregar la cotización al registro")
	cmd.Flags().String("fuentes", "", "directorio con DejaVuSans.ttf y DejaVuSans-Bold.ttf")
	_ = cmd.MarkFlagRequired("cliente")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registro",
		Short: "Lista las cotizaciones registradas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			rows, err := register.ReadAll(cfg.RegisterPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(register.Header, "\t"))
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.QuoteID, r.Date, r.Client, r.Products, r.Total, r.OutputPath, r.Status)
			}
			return tw.Flush()
		},
	}
}

func printResult(w io.Writer, res batch.Result) {
	q := res.Quote
	fmt.Fprintf(w, "cotización %s para %s\n", q.ID, q.ClientName)
	for _, l := range q.Lines {
		fmt.Fprintf(w, "  %-12s %-11s x%-5d %12s\n", l.MatchedCode, l.MatchKind, l.Quantity, l.Subtotal)
	}
	fmt.Fprintf(w, "total: %s\n", q.Total)
	if n := q.Unmatched(); n > 0 {
		fmt.Fprintf(w, "atención: %d código(s) no encontrados\n", n)
	}
	fmt.Fprintf(w, "pdf: %s\n", res.Path)
	if res.Receipt != nil {
		fmt.Fprintf(w, "registro: %s\n", res.Receipt.Path)
	}
}
