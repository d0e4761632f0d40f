package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xelth-com/eckform/internal/form"
)

// demo choices in their "code - name" cell form
var (
	demoLocations  = []string{"WH - Main warehouse", "SA - Shelf A", "SB - Shelf B", "OUT - Output"}
	demoProducts   = []string{"P-100 - Steel coil", "P-200 - Copper wire", "P-300 - Aluminium sheet"}
	demoMaterials  = []string{"M-01 - Raw", "M-02 - Semi-finished"}
	demoWarehouses = []string{"W1 - North", "W2 - South"}
	demoPeople     = []string{"E01 - Operator A", "E02 - Operator B"}
)

func newSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive")
			}
			st, closeStore, err := openStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			day := time.Now().UTC().Truncate(24 * time.Hour)
			for i := 0; i < count; i++ {
				in := demoInput(i, day.AddDate(0, 0, -i))
				st.Create(in.Fields())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🌱 Created %d demo records (next id %d)\n", count, st.NextID())
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 12, "number of records")
	return cmd
}

func demoInput(i int, day time.Time) form.Input {
	locCode, locName := form.ParseCombined(demoLocations[i%len(demoLocations)])
	prodCode, prodName := form.ParseCombined(demoProducts[i%len(demoProducts)])
	matCode, matName := form.ParseCombined(demoMaterials[i%len(demoMaterials)])
	whCode, whName := form.ParseCombined(demoWarehouses[i%len(demoWarehouses)])
	personCode, personName := form.ParseCombined(demoPeople[i%len(demoPeople)])

	in := form.Input{
		DateFrom:      day.Format("2006-01-02"),
		LocationCode:  locCode,
		LocationName:  locName,
		ProductCode:   prodCode,
		ProductName:   prodName,
		LotCode:       fmt.Sprintf("L%03d", i+1),
		MaterialCode:  matCode,
		MaterialName:  matName,
		WarehouseCode: whCode,
		WarehouseName: whName,
		Weight:        fmt.Sprintf("%d kg", 50+i*5),
		PersonCode:    personCode,
		PersonName:    personName,
	}
	// every third entry covers a range
	if i%3 == 0 {
		in.DateTo = day.AddDate(0, 0, 2).Format("2006-01-02")
	}
	return in
}
