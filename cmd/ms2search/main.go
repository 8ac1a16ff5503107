// Command ms2search runs the Classic Search Engine, FDR Analysis Engine,
// and (optionally) the GPTMD discovery engine against a line-oriented
// protein list and scan list. Real mzML/FASTA parsing is out of scope for
// this module; the formats read here are minimal stand-ins meant to
// exercise the engines end to end from the command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/ms2search/fdr"
	"github.com/grailbio/ms2search/gptmd"
	"github.com/grailbio/ms2search/pep"
	"github.com/grailbio/ms2search/protein"
	"github.com/grailbio/ms2search/psm"
	"github.com/grailbio/ms2search/protein/testdigest"
	"github.com/grailbio/ms2search/search"
	"github.com/grailbio/ms2search/spectra"
)

var (
	proteinsPath = flag.String("proteins", "", "path to a TSV file of accession\\tsequence lines")
	scansPath    = flag.String("scans", "", "path to a line-oriented scan file (see readScans)")
	protease     = flag.String("protease", "trypsin", "protease name recorded on resulting PSMs")
	maxMissed    = flag.Int("max-missed-cleavages", 2, "maximum missed cleavages per peptide")
	minLength    = flag.Int("min-peptide-length", 5, "minimum peptide length")
	maxLength    = flag.Int("max-peptide-length", 60, "maximum peptide length")
	ppmTolerance = flag.Float64("ppm-tolerance", 20, "product and precursor mass tolerance, in ppm")
	scoreCutoff  = flag.Float64("score-cutoff", 2, "minimum peptide score to keep a PSM candidate")
	decoyOnFly   = flag.Bool("decoy-on-the-fly", true, "generate reverse/scrambled decoys during search")
	parallelism  = flag.Int("parallelism", runtime.NumCPU(), "worker count for the protein-striped search loop")
	runGptmd     = flag.Bool("gptmd", false, "run PTM-discovery over the post-FDR PSMs and report candidate modifications")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if err := run(); err != nil {
		log.Error.Printf("ms2search: %v", err)
		os.Exit(1)
	}
}

func run() error {
	if *proteinsPath == "" || *scansPath == "" {
		return errors.E("ms2search: -proteins and -scans are required")
	}

	proteins, err := readProteins(*proteinsPath)
	if err != nil {
		return errors.E(err, "reading proteins")
	}
	scanSlice, err := readScans(*scansPath)
	if err != nil {
		return errors.E(err, "reading scans")
	}
	scans := spectra.NewScanCollection(scanSlice)

	opts := search.Opts{
		Proteins: proteins,
		Scans:    scans,
		DigestionParams: protein.DigestionParams{
			Protease:           *protease,
			MaxMissedCleavages: *maxMissed,
			MinPeptideLength:   *minLength,
			MaxPeptideLength:   *maxLength,
		},
		MassDiffAcceptor: protein.NewDotMassDiffAcceptor([]float64{0}, *ppmTolerance),
		CommonParams: search.CommonParams{
			MaxThreadsPerFile:    *parallelism,
			ScoreCutoff:          *scoreCutoff,
			ProductMassTolerance: spectra.NewPPMTolerance(*ppmTolerance),
			DissociationType:     spectra.Autodetect,
		},
		Digester:       testdigest.TrypticDigester{},
		Fragmenter:     testdigest.BYFragmenter{},
		DecoyGenerator: testdigest.ReverseScrambleDecoyGenerator{},
		DecoyOnTheFly:  *decoyOnFly,
	}

	engine, err := search.NewClassicSearchEngine(opts)
	if err != nil {
		return errors.E(err, "constructing search engine")
	}
	results, err := engine.Run(nil)
	if err != nil {
		return errors.E(err, "running search")
	}
	log.Info.Printf("search produced %d PSM slots", len(results.PSMs))

	fdrEngine := fdr.NewFdrAnalysisEngine(fdr.Opts{
		NumNotches:   opts.MassDiffAcceptor.NumNotches(),
		AnalysisType: fdr.AnalysisPSM,
		PEPTrainer:   pep.NopTrainer{},
	})
	fdrResults, err := fdrEngine.Run(nonEmptyPSMs(results.PSMs))
	if err != nil {
		return errors.E(err, "running FDR analysis")
	}

	log.Info.Printf("%d PSMs within 1%% FDR; %d distinct peptides counted",
		len(fdrResults.PSMsWithin1PercentFDR), len(fdrResults.PeptideCounts.ByFullSequence))

	if *runGptmd {
		gptmdEngine := gptmd.NewGptmdEngine(gptmd.Opts{
			Mods:             commonPTMs(),
			DefaultTolerance: spectra.NewPPMTolerance(*ppmTolerance),
		})
		gptmdResults := gptmdEngine.Run(nonEmptyPSMs(results.PSMs))
		log.Info.Printf("gptmd: %d candidate modification placements recorded across %d proteins",
			gptmdResults.ModsAdded, len(gptmdResults.Mods.Accessions()))
	}
	return nil
}

// commonPTMs is the small fixed search space the -gptmd flag scans over; a
// real deployment would load this list from a modification database instead.
func commonPTMs() []protein.Modification {
	return []protein.Modification{
		{Name: "Oxidation", Motif: "M", MonoisotopicMass: 15.9949, Valid: true},
		{Name: "Acetyl", Motif: "K", MonoisotopicMass: 42.0106, Valid: true},
		{Name: "Phospho", Motif: "S", MonoisotopicMass: 79.9663, Valid: true},
		{Name: "Phospho", Motif: "T", MonoisotopicMass: 79.9663, Valid: true},
		{Name: "Deamidation", Motif: "N", MonoisotopicMass: 0.9840, Valid: true},
	}
}

// readProteins reads a TSV file of "accession\tsequence" lines.
func readProteins(path string) ([]*protein.Protein, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []*protein.Protein
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, errors.E(fmt.Sprintf("ms2search: malformed protein line: %q", line))
		}
		out = append(out, &protein.Protein{Accession: parts[0], BaseSequence: strings.ToUpper(parts[1])})
	}
	return out, scanner.Err()
}

// readScans reads a line-oriented scan file: one scan per line, fields
// "scan_index scan_number precursor_mass dissociation_type mz1:intensity1
// mz2:intensity2 ...". dissociation_type is one of the names
// spectra.ParseDissociationType recognizes (HCD, CID, ETD, ETHCD, EThcD,
// ISCID); any other token, including "auto", defaults the scan to HCD
// rather than leaving it unresolvable.
func readScans(path string) ([]*spectra.Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []*spectra.Scan
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.E(fmt.Sprintf("ms2search: malformed scan line: %q", line))
		}
		scanIndex, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, err
		}
		scanNumber, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		precursorMass, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, err
		}
		diss := spectra.ParseDissociationType(fields[3])
		if diss == spectra.Autodetect {
			diss = spectra.HCD
		}
		var peaks []spectra.Peak
		for _, f := range fields[4:] {
			mzIntensity := strings.SplitN(f, ":", 2)
			if len(mzIntensity) != 2 {
				continue
			}
			mz, err := strconv.ParseFloat(mzIntensity[0], 64)
			if err != nil {
				return nil, err
			}
			intensity, err := strconv.ParseFloat(mzIntensity[1], 64)
			if err != nil {
				return nil, err
			}
			peaks = append(peaks, spectra.Peak{MZ: mz, Intensity: intensity})
		}
		out = append(out, spectra.NewScan(scanIndex, scanNumber, precursorMass, diss, peaks))
	}
	return out, scanner.Err()
}

// nonEmptyPSMs drops the empty slots search.EngineResults.PSMs carries for
// scans that no peptide cleared the score cutoff for.
func nonEmptyPSMs(psms []*psm.PeptideSpectralMatch) []*psm.PeptideSpectralMatch {
	out := make([]*psm.PeptideSpectralMatch, 0, len(psms))
	for _, p := range psms {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
