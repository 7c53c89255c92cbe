// pedmodels annotates each variant of a VCF with the Mendelian inheritance
// models that are consistent with the genotypes of one family, and with the
// compound heterozygous partners of the variant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bix"
	"github.com/carbocation/pedmodels"
	"github.com/carbocation/pedmodels/annotate"
	"github.com/carbocation/pedmodels/chrpos"
	"github.com/carbocation/pedmodels/compileinfo"
	"github.com/carbocation/pedmodels/generegion"
	"github.com/carbocation/pedmodels/pedigree"
	"github.com/carbocation/vcfgo"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	compileinfo.PrintToStdErr()

	cfg, err := LoadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}

	if err := STDOUT.Flush(); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg Config) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var client *storage.Client
	if cfg.UsesGoogleStorage() {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	fam, err := loadFamily(cfg, client)
	if err != nil {
		return err
	}
	log.Printf("Evaluating family %s with %d members (%d affected)\n", fam.ID, len(fam.Individuals), len(fam.Affected()))

	var regions *generegion.Index
	if cfg.Genes != "" {
		genes, err := generegion.ReadPath(cfg.Genes, cfg.GeneLayout, client)
		if err != nil {
			return err
		}
		regions = generegion.NewIndex(genes)
		log.Printf("Loaded %d gene regions from %s\n", regions.Len(), cfg.Genes)
	} else {
		log.Println("No --genes given: compound heterozygous pairs will not be searched")
	}

	loci, err := loadLoci(cfg, client)
	if err != nil {
		return err
	}

	var (
		src    annotate.Source
		header *vcfgo.Header
	)
	if len(loci) > 0 {
		tbx, err := bix.NewGCP(cfg.VCF, client)
		if err != nil {
			return err
		}
		defer tbx.Close()

		log.Printf("Reading %d region(s) from %s via tabix\n", len(loci), cfg.VCF)
		header = tbx.VReader.Header
		src = annotate.FromTabix(tbx, loci)
	} else {
		f, err := pedmodels.Open(cfg.VCF, client)
		if err != nil {
			return err
		}
		defer f.Close()

		rdr, err := vcfgo.NewReader(bufio.NewReaderSize(f, BufferSize), true)
		if err != nil {
			if rdr == nil {
				return fmt.Errorf("VCF reader could not be initialized: %w", err)
			}
			log.Println("Invalid VCF header. Attempting to continue. Invalid features include:")
			log.Println(err)
			rdr.Clear()
		}
		header = rdr.Header
		src = annotate.FromReader(rdr)
	}

	p, err := annotate.NewPipeline(header, annotate.Config{
		Family:  fam,
		Regions: regions,
		Options: opts,
	})
	if err != nil {
		return err
	}

	annotate.AddHeader(header,
		compileinfo.Get().HeaderLine("pedmodels"),
		"##pedmodels_command="+strings.Join(os.Args, " "),
	)

	var out io.Writer = STDOUT
	finish := func() error { return nil }
	if cfg.Out != "" {
		out, finish, err = createOutput(cfg.Out)
		if err != nil {
			return err
		}
	}

	w, err := vcfgo.NewWriter(out, header)
	if err != nil {
		finish()
		return err
	}

	if err := p.Run(ctx, src, func(rec *annotate.Record) error {
		w.WriteVariant(rec.VCF)
		return nil
	}); err != nil {
		finish()
		return err
	}

	return finish()
}

// createOutput creates path for buffered writing. finish flushes and closes
// the file, reporting the first error.
func createOutput(path string) (out io.Writer, finish func() error, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	out, finish = bufferedOutput(f)
	return out, finish, nil
}

func bufferedOutput(wc io.WriteCloser) (io.Writer, func() error) {
	bw := bufio.NewWriterSize(wc, BufferSize)

	return bw, func() error {
		if err := bw.Flush(); err != nil {
			wc.Close()
			return err
		}
		return wc.Close()
	}
}

func loadFamily(cfg Config, client *storage.Client) (*pedigree.Family, error) {
	ped, err := pedmodels.OpenPED(cfg.PED, client)
	if err != nil {
		return nil, err
	}
	defer ped.Close()

	rows, err := ped.ReadAll()
	if err != nil {
		return nil, err
	}

	fams, err := pedigree.FromPED(rows)
	if err != nil {
		return nil, err
	}

	if cfg.Family == "" {
		return fams.Only()
	}

	return fams.Get(cfg.Family)
}

func loadLoci(cfg Config, client *storage.Client) ([]chrpos.TabixLocus, error) {
	var loci []chrpos.TabixLocus

	if cfg.Region != "" {
		locus, err := chrpos.ParseRegion(cfg.Region)
		if err != nil {
			return nil, err
		}
		loci = append(loci, locus)
	}

	if cfg.Regions != "" {
		fromFile, err := chrpos.TabixLociFromPath(cfg.Regions, client)
		if err != nil {
			return nil, err
		}
		loci = append(loci, fromFile...)
	}

	return loci, nil
}
