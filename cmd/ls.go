package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/regcat/regcat/pkg/catalog"
	"github.com/regcat/regcat/pkg/storage"
)

// lsCmd resolves a catalog path from the command line, printing the
// projection at whatever level the arguments stop at.
var lsCmd = &cobra.Command{
	Use:   "ls [semester [dept [course [unique]]]]",
	Short: "List catalog entries at a path",
	Long: `Walks the catalog level by level. With no arguments it lists semesters;
each further argument descends into a semester, field of study, course
number and unique section number.`,
	Args: cobra.MaximumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		if path == "" {
			path = catalogPath(nil, 0)
		}

		store, err := storage.Load(path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		switch len(args) {
		case 0:
			for _, id := range store.SemesterIDs() {
				fmt.Println(id)
			}
			return nil
		case 1:
			fields, err := store.FieldsOfStudy(args[0])
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "DEPT\tNAME\t")
			for _, fos := range fields {
				fmt.Fprintf(w, "%s\t%s\t\n", fos.DeptAbbr, fos.DeptName)
			}
			return w.Flush()
		case 2:
			rows, err := store.Courses(args[0], args[1])
			if err != nil {
				return err
			}
			return printRows(rows)
		case 3:
			rows, err := store.Course(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printRows(rows)
		default:
			rows, err := store.Section(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			return printRows(rows)
		}
	},
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}

func printRows(rows []catalog.Course) error {
	w := newTable()
	fmt.Fprintln(w, "UNIQUE\tCOURSE\tTOPIC\tTITLE\tINSTRUCTOR\tDAYS\tTIME\tROOM\tSEATS\t")
	for _, c := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s-%s\t%s %s\t%d/%d\t\n",
			c.Unique, c.FullCourseNumber, c.Topic, c.Title, c.Instructor,
			c.Days, c.From, c.To, c.Building, c.Room, c.SeatsTaken, c.MaxEnrollment)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().String("catalog", "", "Path to the catalog file (default from config)")
}
