/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gopanel/geometry2D"
)

// NACACmd represents the naca command
var NACACmd = &cobra.Command{
	Use:   "naca <digits>",
	Short: "Write a NACA 4-digit section in Selig format",
	Long: `
Generates a unit chord NACA 4-digit section with cosine spaced stations and
writes it as a Selig format coordinate file, upper surface first from the
trailing edge.

gopanel naca 2412 -p 80 -o naca2412.dat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nPts, _ := cmd.Flags().GetInt("points")
		open, _ := cmd.Flags().GetBool("openTE")
		fileName, _ := cmd.Flags().GetString("output")
		if len(fileName) == 0 {
			fileName = fmt.Sprintf("naca%s.dat", args[0])
		}
		return WriteNACA(args[0], nPts, !open, fileName)
	},
}

func init() {
	rootCmd.AddCommand(NACACmd)
	NACACmd.Flags().IntP("points", "p", 100, "intervals per surface")
	NACACmd.Flags().Bool("openTE", false, "use the finite thickness trailing edge")
	NACACmd.Flags().StringP("output", "o", "", "output file, default naca<digits>.dat")
}

func WriteNACA(digits string, nPts int, closedTE bool, fileName string) (err error) {
	var (
		af   *geometry2D.Airfoil
		file *os.File
	)
	if af, err = geometry2D.NACA4(digits, nPts, closedTE); err != nil {
		return
	}
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	if err = af.WriteSelig(file); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"file":   fileName,
		"points": af.Len(),
	}).Info("wrote " + af.Name)
	return
}
