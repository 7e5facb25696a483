package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/regcat/regcat/pkg/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [catalog-file]",
	Short: "Prints statistics about the semesters in the catalog.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogPath(args, 0)

		store, err := storage.Load(path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		if store.Len() == 0 {
			fmt.Println("No data in the catalog to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "SEMESTER\tREPORT DATE\tFIELDS\tCOURSES\tSEATS TAKEN\t")

		var totalFields, totalCourses, totalSeats int
		for _, sem := range store.Semesters() {
			seats := 0
			for _, c := range sem.Courses {
				seats += c.SeatsTaken
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t\n",
				sem.SemesterID, sem.ReportDate.Format("2006-01-02"),
				len(sem.FieldsOfStudy), len(sem.Courses), seats)
			totalFields += len(sem.FieldsOfStudy)
			totalCourses += len(sem.Courses)
			totalSeats += seats
		}

		fmt.Fprintln(w, " \t \t \t \t \t")
		fmt.Fprintf(w, "TOTAL\t \t%d\t%d\t%d\t\n", totalFields, totalCourses, totalSeats)

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
