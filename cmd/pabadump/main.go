// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacticsarc/paba"
)

var (
	bigEndian bool
	legacy    bool
	outDir    string
	textOut   string
)

func prettyPrint(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "\t"); err != nil {
		return string(raw)
	}
	return pretty.String()
}

func endianFromFlag() paba.Endian {
	if bigEndian {
		return paba.BigEndian
	}
	return paba.LittleEndian
}

func inspect(cmd *cobra.Command, args []string) {
	filename := args[0]
	data, err := paba.Open(filename, nil)
	if err != nil {
		log.Fatalf("opening %s: %s", filename, err)
	}

	store, err := paba.FromBytes(data, endianFromFlag())
	if err != nil {
		log.Fatalf("parsing %s: %s", filename, err)
	}

	fmt.Printf("data section size: %d bytes\n", store.Size())
	fmt.Println(prettyPrint(store.AllLabels()))
}

func extractArc(cmd *cobra.Command, args []string) {
	filename := args[0]
	data, err := paba.Open(filename, nil)
	if err != nil {
		log.Fatalf("opening %s: %s", filename, err)
	}

	files, err := paba.ArcFromBytes(data)
	if err != nil {
		log.Fatalf("parsing %s: %s", filename, err)
	}

	for name, contents := range files {
		fmt.Printf("%s (%d bytes)\n", name, len(contents))
		if outDir == "" {
			continue
		}
		if err := os.WriteFile(outDir+string(os.PathSeparator)+name, contents, 0o644); err != nil {
			log.Fatalf("writing %s: %s", name, err)
		}
	}
}

func dumpText(cmd *cobra.Command, args []string) {
	filename := args[0]
	data, err := paba.Open(filename, nil)
	if err != nil {
		log.Fatalf("opening %s: %s", filename, err)
	}

	archive, err := paba.TextArchiveFromBytes(data, endianFromFlag(), legacy)
	if err != nil {
		log.Fatalf("parsing %s: %s", filename, err)
	}

	if archive.Title != "" {
		fmt.Printf("title: %s\n", archive.Title)
	}
	for _, key := range archive.Keys() {
		message, _ := archive.GetMessage(key)
		fmt.Printf("%s: %s\n", key, message)
	}
}

func setText(cmd *cobra.Command, args []string) {
	filename, key, message := args[0], args[1], args[2]
	data, err := paba.Open(filename, nil)
	if err != nil {
		log.Fatalf("opening %s: %s", filename, err)
	}

	archive, err := paba.TextArchiveFromBytes(data, endianFromFlag(), legacy)
	if err != nil {
		log.Fatalf("parsing %s: %s", filename, err)
	}

	archive.SetMessage(key, message)

	out, err := archive.Serialize()
	if err != nil {
		log.Fatalf("serializing %s: %s", filename, err)
	}

	dest := filename
	if textOut != "" {
		dest = textOut
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		log.Fatalf("writing %s: %s", dest, err)
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pabadump",
		Short: "A pointer-annotated binary archive inspector",
		Long:  "Reads and extracts tactical-RPG binary archive formats",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("pabadump version 0.1.0")
		},
	}

	var inspectCmd = &cobra.Command{
		Use:   "inspect [file]",
		Short: "Dump an archive's data size and labels",
		Args:  cobra.ExactArgs(1),
		Run:   inspect,
	}

	var arcCmd = &cobra.Command{
		Use:   "arc [file]",
		Short: "List (and optionally extract) a grouped arc bundle's contents",
		Args:  cobra.ExactArgs(1),
		Run:   extractArc,
	}

	var textCmd = &cobra.Command{
		Use:   "text",
		Short: "Dump or edit a text archive's entries",
	}

	var textDumpCmd = &cobra.Command{
		Use:   "dump [file]",
		Short: "Dump a text archive's entries",
		Args:  cobra.ExactArgs(1),
		Run:   dumpText,
	}

	var textSetCmd = &cobra.Command{
		Use:   "set [file] [key] [message]",
		Short: "Set (or add) one entry in a text archive and rewrite it to disk",
		Args:  cobra.ExactArgs(3),
		Run:   setText,
	}

	rootCmd.PersistentFlags().BoolVarP(&bigEndian, "big-endian", "b", false, "parse as a big-endian archive")
	textCmd.PersistentFlags().BoolVarP(&legacy, "legacy", "l", false, "parse as a legacy (titleless, Shift-JIS) text archive")
	arcCmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to extract files into")
	textSetCmd.Flags().StringVarP(&textOut, "out", "o", "", "file to write the updated archive to (defaults to overwriting the input)")

	textCmd.AddCommand(textDumpCmd, textSetCmd)
	rootCmd.AddCommand(versionCmd, inspectCmd, arcCmd, textCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
