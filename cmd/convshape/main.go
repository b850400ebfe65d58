// convshape reports the geometry of a 2D convolution or deconvolution
// configuration: the effective (dilation-adjusted) kernel, the output
// spatial size under the selected convolution mode and, for Same mode, the
// implied asymmetric paddings.
//
// Example:
//
//	convshape -input 32,3,224,224 -kernel 7,7 -stride 2,2 -mode same -filters 64
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/tensorkit/convgeom"
	"github.com/tensorkit/convgeom/xslices"
)

var (
	flagInput = xslices.Flag("input", []int{1, 3, 28, 28},
		"Input shape as batch,channels,height,width (channel-first).", strconv.Atoi)
	flagKernel = xslices.Flag("kernel", []int{3, 3},
		"Kernel size as height,width.", strconv.Atoi)
	flagStride = xslices.Flag("stride", []int{1, 1},
		"Strides as height,width.", strconv.Atoi)
	flagPadding = xslices.Flag("padding", []int{0, 0},
		"Explicit padding as height,width. Must be zero with -mode=same.", strconv.Atoi)
	flagDilation = xslices.Flag("dilation", []int{1, 1},
		"Kernel dilation as height,width. 1,1 means no dilation.", strconv.Atoi)
	flagMode    = flag.String("mode", "Truncate", "Convolution mode: Same, Strict or Truncate.")
	flagFilters = flag.Int("filters", 0, "Number of filters (output channels). 0 keeps the input channels.")
	flagDeconv  = flag.Bool("deconv", false, "Also report the deconvolution (transposed convolution) output size.")
)

func main() {
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %v. See 'convshape -help'.", flag.Args())
		os.Exit(1)
	}
	if len(*flagInput) != 4 {
		klog.Errorf("-input must have 4 values (batch,channels,height,width), got %v.", *flagInput)
		os.Exit(1)
	}
	for _, f := range []struct {
		name   string
		values []int
	}{{"kernel", *flagKernel}, {"stride", *flagStride}, {"padding", *flagPadding}, {"dilation", *flagDilation}} {
		if len(f.values) != 2 {
			klog.Errorf("-%s must have 2 values (height,width), got %v.", f.name, f.values)
			os.Exit(1)
		}
	}

	mode, err := convgeom.ParseConvolutionMode(*flagMode)
	if err != nil {
		fail(err)
	}
	report(mode)
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row == lgtable.HeaderRow:
				s = headerRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			return
		})
}

func report(mode convgeom.ConvolutionMode) {
	input, kernel := *flagInput, *flagKernel
	strides, padding, dilation := *flagStride, *flagPadding, *flagDilation

	conf := convgeom.Conv2D().
		KernelSizePerDim(kernel[0], kernel[1]).
		StridesPerDim(strides[0], strides[1]).
		PaddingPerDim(padding[0], padding[1]).
		DilationPerDim(dilation[0], dilation[1]).
		Mode(mode)
	channels := input[1]
	if *flagFilters > 0 {
		conf.Filters(*flagFilters)
		channels = conf.NumFeatureMaps()
	}
	if err := conf.Validate(); err != nil {
		fail(err)
	}

	eKernel := must.M1(convgeom.EffectiveKernelSize(kernel, dilation))
	outSize, err := conf.OutputSize(input)
	if err != nil {
		fail(err)
	}

	table := newPlainTable()
	table.Headers("Property", "Value")
	table.Row("Input shape", formatInts(input))
	table.Row("Mode", mode.String())
	table.Row("Kernel", formatInts(kernel))
	if convgeom.HasDilation(dilation) {
		table.Row("Dilation", formatInts(dilation))
		table.Row("Effective kernel", formatInts(eKernel))
	}
	table.Row("Strides", formatInts(strides))
	table.Row("Padding", formatInts(padding))
	table.Row("Output size (h,w)", formatInts(outSize))
	table.Row("Output shape", formatInts([]int{input[0], channels, outSize[0], outSize[1]}))
	table.Row("Output elements", humanize.Comma(int64(input[0])*int64(channels)*int64(outSize[0])*int64(outSize[1])))

	if mode == convgeom.Same {
		topLeft, bottomRight, err := conf.SameModePadding(input)
		if err != nil {
			fail(err)
		}
		table.Row("Same-mode padding (top,left)", formatInts(topLeft))
		table.Row("Same-mode padding (bottom,right)", formatInts(bottomRight))
	}

	if *flagDeconv {
		deconvSize, err := conf.DeconvolutionOutputSize(input)
		if err != nil {
			fail(err)
		}
		table.Row("Deconvolution output size (h,w)", formatInts(deconvSize))
	}

	fmt.Println(titleStyle.Render("Convolution geometry"))
	fmt.Println(table.Render())
}

func formatInts(values []int) string {
	return strings.Join(xslices.Map(values, strconv.Itoa), ", ")
}

func fail(err error) {
	klog.Errorf("%v", err)
	os.Exit(1)
}
