// Package hclgraph reads and writes the HCL graph container the CLI works
// on. The rewrite passes treat serialization as an external concern; this
// package is the one concrete container format the driver speaks.
//
// A graph file is a sequence of node blocks:
//
//	node "conv" {
//	  op     = "_FusedConv2D"
//	  inputs = ["x", "filter", "bias"]
//
//	  attr "fused_ops" {
//	    list = ["BiasAdd"]
//	  }
//	  attr "num_args" {
//	    int = 1
//	  }
//	  attr "T" {
//	    type = "DT_FLOAT"
//	  }
//	}
//
// Each attr block carries exactly one of int, float, bool, str, type, or
// list. Inside a list, strings spelling a known "DT_*" tag load as type
// elements and everything else as opaque byte strings, which matches how
// the attribute bag distinguishes type lists from op-name-tag lists.
package hclgraph
