/*Package assembly builds candidate gene and transcript models from spliced
  genome alignments. Alignments flow strictly forward through one State:
  aligned blocks become exons, consecutive exons become introns, introns are
  grouped into splice-junction clusters, clusters sharing exons merge into
  gene loci, and each locus yields a directed splice graph whose root-to-leaf
  paths are the reported isoforms.
*/
package assembly
