// Package hclgram loads declarative phrase-grammar manifests written in
// HCL and installs them into a registry.
//
// The derivation engine itself operates on already-built node trees;
// manifests are a collaborator layer for the CLI and for add-ons that
// prefer declarative authoring. A manifest contains phrase blocks and
// extension blocks:
//
//	phrase "tweet" {
//	  command = true
//	  root {
//	    sequence {
//	      child {
//	        literal {
//	          text     = "tweet "
//	          category = "verb"
//	        }
//	      }
//	      child {
//	        key = "message"
//	        freetext {
//	          max      = 140
//	          category = "text"
//	        }
//	      }
//	    }
//	  }
//	}
//
//	extension {
//	  target  = "tweet"
//	  extends = "toot"
//	}
//
// Trees described in manifests are static: their generators ignore the
// evaluation context, which makes them trivially deterministic. Dynamic
// data still enters through lookup blocks, which resolve against the
// session's evaluation context at parse time.
package hclgram
